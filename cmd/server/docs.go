package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Trading Journal API
// @version         0.1.0
// @description     Trade journal CRUD, derived analytics, and chart replay.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
