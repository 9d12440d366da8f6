package main

//go:generate swag init

import "github.com/satheeshds/invoicing/cmd"

// @title           Invoicing API
// @version         1.0.0
// @description     Invoices, products and sales analytics.
// @BasePath        /
// @securityDefinitions.basic  BasicAuth

func main() {
	cmd.Execute()
}
