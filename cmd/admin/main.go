package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: admin <migrate|create-admin|import-customers> [args]")
	}

	switch os.Args[1] {
	case "migrate":
		RunMigrate()
	case "create-admin":
		RunCreateAdmin(os.Args[2:])
	case "import-customers":
		RunImportCustomers(os.Args[2:])
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
}
