package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"finance_backend/internal/app/router"
	analyticshandler "finance_backend/internal/feature/analytics/transport/handler"
	analyticsusecase "finance_backend/internal/feature/analytics/usecase"
	authadapters "finance_backend/internal/feature/auth/adapters"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	authusecase "finance_backend/internal/feature/auth/usecase"
	platformadapters "finance_backend/internal/feature/platforms/adapters"
	platformhandler "finance_backend/internal/feature/platforms/transport/handler"
	platformusecase "finance_backend/internal/feature/platforms/usecase"
	quotehandler "finance_backend/internal/feature/quotes/transport/handler"
	quoteusecase "finance_backend/internal/feature/quotes/usecase"
	txadapters "finance_backend/internal/feature/transactions/adapters"
	txhandler "finance_backend/internal/feature/transactions/transport/handler"
	txusecase "finance_backend/internal/feature/transactions/usecase"
	"finance_backend/internal/platform/cache"
	platformdb "finance_backend/internal/platform/db"
	"finance_backend/internal/platform/externalapi/twelvedata"
	platformhttp "finance_backend/internal/platform/http"
	jwtmw "finance_backend/internal/platform/jwt"
	platformredis "finance_backend/internal/platform/redis"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Market data client
	tdCfg := twelvedata.LoadConfig()
	market := twelvedata.NewTwelveDataMarket(tdCfg, platformhttp.NewHTTPClient(tdCfg.Timeout))
	rates := cache.NewCachingRateRepository(rdb, 0, market)

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	txRepo := txadapters.NewTransactionRepository(db)
	platformRepo := platformadapters.NewPlatformRepository()

	// Usecase
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), 24*time.Hour)
	authUC := authusecase.NewAuthUsecase(userRepo, jwtGen)
	snapshotUC := quoteusecase.NewSnapshotUsecase(market, rates, snapshotConfigFromEnv())
	txUC := txusecase.NewTransactionUsecase(txRepo)
	analyticsUC := analyticsusecase.NewAnalyticsUsecase(txRepo)
	platformUC := platformusecase.NewPlatformUsecase(platformRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	quoteH := quotehandler.NewQuoteHandler(snapshotUC)
	txH := txhandler.NewTransactionHandler(txUC)
	analyticsH := analyticshandler.NewAnalyticsHandler(analyticsUC)
	platformH := platformhandler.NewPlatformHandler(platformUC)

	r := router.NewRouter(authH, quoteH, txH, analyticsH, platformH)

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

// snapshotConfigFromEnv builds the quote refresh settings, falling back to a
// small default watchlist so a fresh checkout serves data immediately.
func snapshotConfigFromEnv() quoteusecase.SnapshotConfig {
	cfg := quoteusecase.SnapshotConfig{
		StockSymbols:  splitCSV(os.Getenv("STOCK_SYMBOLS")),
		CryptoSymbols: splitCSV(os.Getenv("CRYPTO_SYMBOLS")),
		StaleAfter:    secondsEnv("STALENESS_INTERVAL_SEC"),
		RefreshGrace:  secondsEnv("REFRESH_GRACE_SEC"),
	}
	if len(cfg.StockSymbols) == 0 {
		cfg.StockSymbols = []string{"RELIANCE", "TCS", "HDFCBANK", "INFY", "ICICIBANK"}
	}
	if len(cfg.CryptoSymbols) == 0 {
		cfg.CryptoSymbols = []string{"BTC/USD", "ETH/USD", "SOL/USD"}
	}
	return cfg
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func secondsEnv(key string) time.Duration {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
