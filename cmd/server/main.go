package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"askhub/internal/db"
	"askhub/internal/server"
)

func main() {
	godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "askhub.db"
	}
	templateDir := os.Getenv("TEMPLATE_DIR")
	if templateDir == "" {
		templateDir = "web/templates"
	}
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		logrus.Fatal("SESSION_SECRET must be set")
	}

	database, err := db.Open(dbPath)
	if err != nil {
		logrus.WithError(err).Fatal("open database")
	}
	srv, err := server.New(database, templateDir, secret)
	if err != nil {
		logrus.WithError(err).Fatal("build server")
	}
	logrus.WithField("port", port).Info("listening")
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
