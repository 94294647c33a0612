package main

import (
	"flag"
	"log/slog"
	"os"

	"socialnet/crud"
	"socialnet/http"
)

// main is the app's entry point.
func main() {
	// Check if the flag "-prod" has been provided. It means that we're
	// running in production, where a .config.json file is required.
	productionBool := flag.Bool("prod", false, "Provide this flag in production to ensure that a .config.json file is provided before the application starts.")
	flag.Parse()

	config := LoadConfig(*productionBool)

	// Open a database connection and execute migrations.
	db := NewDB(config.Database.ConnectionInfo())
	err := Open(db, config.IsProd())
	must(err)
	defer Close(db)
	err = AutoMigrate(db)
	must(err)

	// Start the crud services.
	services, err := crud.NewServices(
		db.Gorm,
		crud.WithUser(config.HMACKey, config.Pepper),
		crud.WithPost(),
		crud.WithFollow(),
		crud.WithLike(),
	)
	must(err)

	// Set up a webserver.
	server := http.NewServer(
		http.ServerConfig{
			CSRFKey: config.CSRFKey,
			Secure:  config.IsProd(),
		},
		services.User,
		services.Post,
		services.Follow,
		services.Like,
	)

	// Serve the app.
	if err := server.Run(config.Port); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// must is a little helper for shortening the panic instruction.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
