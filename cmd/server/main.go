package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"delivery-dispatch-service/internal/adapters/geocode"
	"delivery-dispatch-service/internal/adapters/location"
	"delivery-dispatch-service/internal/adapters/matrix"
	"delivery-dispatch-service/internal/adapters/repositories"
	"delivery-dispatch-service/internal/api"
	"delivery-dispatch-service/internal/config"
	"delivery-dispatch-service/internal/platform/db"
	"delivery-dispatch-service/internal/ports"
	"delivery-dispatch-service/internal/services"
	"delivery-dispatch-service/internal/solver"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, geo backends) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found (using environment variables)")
	}

	if level, err := logrus.ParseLevel(config.Get("LOG_LEVEL", "info")); err == nil {
		logrus.SetLevel(level)
	}

	port := config.Get("PORT", "8080")

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		logrus.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(databaseURL)
	if err != nil {
		logrus.Fatal(err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: config.Get("REDIS_ADDR", "localhost:6379"),
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("verify redis connection: %v", err)
	}
	defer redisClient.Close()

	locationTTL := time.Duration(config.GetClampedInt("DRIVER_LOCATION_TTL_SECONDS", 7200, 300, 86400)) * time.Second
	solverLimit := time.Duration(config.GetClampedInt("ROUTE_SOLVER_TIME_LIMIT_SECONDS", 5, 1, 30)) * time.Second

	geocoder, matrixProvider := buildGeoBackends()

	orderRepo := repositories.NewPostgresOrderRepository(database)
	locationStore := location.NewRedisLocationStore(redisClient, locationTTL)

	optimizer := &services.RouteOptimizer{
		Orders:          orderRepo,
		Locations:       locationStore,
		Geocoder:        geocoder,
		Matrix:          matrixProvider,
		SolverTimeLimit: solver.ClampTimeLimit(solverLimit),
	}

	router := api.NewRouter(optimizer, orderRepo, locationStore)

	// Write timeout leaves headroom above the maximum solver budget plus
	// external geo calls.
	logrus.Infof("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logrus.Fatal(srv.ListenAndServe())
}

// buildGeoBackends selects the geocoding and matrix backends. Absence of a
// live configuration falls back to the deterministic approximations; a
// present but unusable live configuration is fatal at startup so
// misconfiguration never masquerades as a legitimate runtime choice.
func buildGeoBackends() (ports.Geocoder, ports.RouteMatrixProvider) {
	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	geocodeCache := geocode.NewCache()

	var geocodeBackend geocode.Backend = geocode.NewHashBackend()
	if orsKey != "" && !config.GetBool("USE_APPROX_GEOCODER", false) {
		backend, err := geocode.NewORSBackend(orsKey)
		if err != nil {
			logrus.Fatalf("configure ORS geocoder: %v", err)
		}
		geocodeBackend = backend
	}

	var matrixProvider ports.RouteMatrixProvider = matrix.NewHaversineProvider()
	if orsKey != "" && !config.GetBool("USE_APPROX_MATRIX", false) {
		provider, err := matrix.NewORSProvider(orsKey)
		if err != nil {
			logrus.Fatalf("configure ORS matrix provider: %v", err)
		}
		matrixProvider = provider
	}

	return geocode.NewGeocoder(geocodeBackend, geocodeCache), matrixProvider
}
