package main

import (
	"caloria/database"
	"caloria/internal/utils"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of demo users to create")
	startID := seedCmd.Int("start-id", 1, "Starting user ID")

	clearCmd := flag.NewFlagSet("clear", flag.ExitOnError)
	clearStart := clearCmd.Int("start", 1, "Start user ID for deletion")
	clearEnd := clearCmd.Int("end", 1000, "End user ID for deletion")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		database.ConnectDatabase()
		if err := database.MigrateDatabase(); err != nil {
			log.Fatalf("Error running migrations: %v", err)
		}

		log.Printf("Seeding %d demo users starting at ID %d", *numUsers, *startID)
		if err := utils.SeedDemoData(database.DB, *numUsers, uint(*startID)); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}

	case "clear":
		clearCmd.Parse(os.Args[2:])
		database.ConnectDatabase()

		log.Printf("Clearing demo data for users %d-%d", *clearStart, *clearEnd)
		if err := utils.ClearDemoData(database.DB, uint(*clearStart), uint(*clearEnd)); err != nil {
			log.Fatalf("Error clearing demo data: %v", err)
		}

	case "help":
		printHelp()

	default:
		fmt.Printf("Unknown subcommand: %s\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Database utility tool for the Caloria budget engine")
	fmt.Println("\nUsage:")
	fmt.Println("  db-tool COMMAND [OPTIONS]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed         Create demo users with profiles, baseline weeks, and active periods")
	fmt.Println("               Options:")
	fmt.Println("                 --users=N       Number of demo users to create (default: 100)")
	fmt.Println("                 --start-id=N    Starting user ID (default: 1)")
	fmt.Println("")
	fmt.Println("  clear        Delete demo data for a user ID range")
	fmt.Println("               Options:")
	fmt.Println("                 --start=N       Start user ID (default: 1)")
	fmt.Println("                 --end=N         End user ID (default: 1000)")
	fmt.Println("")
	fmt.Println("  help         Show this help message")
	fmt.Println("")
	fmt.Println("Environment variables:")
	fmt.Println("  DB_HOST      Database host")
	fmt.Println("  DB_PORT      Database port")
	fmt.Println("  DB_USER      Database user")
	fmt.Println("  DB_PASSWORD  Database password")
	fmt.Println("  DB_NAME      Database name")
	fmt.Println("  DB_SSLMODE   Database SSL mode")
}
