// Package main initializes and starts the keepsafe HTTPS server,
// setting up configuration, logging, database connections, repositories,
// services, handlers, and TLS.
package main

import (
	"cmp"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	nethttp "net/http"

	"github.com/akazakov/keepsafe/internal/config"
	"github.com/akazakov/keepsafe/internal/db"
	"github.com/akazakov/keepsafe/internal/logger"
	"github.com/akazakov/keepsafe/internal/repository"
	"github.com/akazakov/keepsafe/internal/server/handler/http"
	"github.com/akazakov/keepsafe/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection and bootstrap the schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories for authentication and user secrets.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	secretsRepo := repository.NewPostgresSecretsRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo)
	secretsService := service.NewUserSecretsService(secretsRepo)

	// Create HTTP handlers for auth and user-secret endpoints.
	authHandler := &http.AuthHandler{
		AuthService: authService,
		CACertPath:  options.CAFile,
		CAKeyPath:   options.CAKeyFile,
	}
	secretsHandler := &http.UserSecretsHandler{Service: secretsService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, secretsHandler, zapLogger)

	// Load server TLS certificate and key.
	cert, err := tls.LoadX509KeyPair(options.CertFile, options.KeyFile)
	if err != nil {
		zapLogger.Fatal("failed to load server TLS cert/key", zap.Error(err))
	}

	// Load and append CA certificate for client cert verification.
	caCert, err := os.ReadFile(options.CAFile)
	if err != nil {
		zapLogger.Fatal("failed to read CA cert", zap.Error(err))
	}
	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
		zapLogger.Fatal("failed to append CA cert to pool")
	}

	// Configure TLS to require or verify client certificates.
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.VerifyClientCertIfGiven,
		ClientCAs:    caCertPool,
		MinVersion:   tls.VersionTLS12,
	}

	// Create and start the HTTPS server.
	server := &nethttp.Server{
		Addr:      options.Port,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	zapLogger.Info("starting HTTPS server", zap.String("addr", options.Port))
	if err := server.ListenAndServeTLS("", ""); err != nil {
		zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
	}
}
