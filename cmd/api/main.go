package main

import (
	"os"
)

// @title        Bookshop API
// @version      1.0
// @description  书店后端：图书、客户、订单
// @host         localhost:8000
// @BasePath     /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
