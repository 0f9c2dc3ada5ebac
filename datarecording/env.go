package datarecording

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

// Recording defaults come from the environment, with a .env file in the
// working directory honored if present:
//
//	ODEGEN_RECORDING_PATH  - database path used when New gets ""
//	ODEGEN_RECORDING_BATCH - entries buffered between flushes
type config struct {
	path      string
	batchSize int
}

var (
	loadEnvOnce sync.Once
	envConfig   config
)

func loadConfig() config {
	loadEnvOnce.Do(func() {
		// Missing .env files are fine; explicit environment still
		// applies.
		_ = godotenv.Load()

		envConfig.path = os.Getenv("ODEGEN_RECORDING_PATH")
		envConfig.batchSize = 100000

		if batch := os.Getenv("ODEGEN_RECORDING_BATCH"); batch != "" {
			n, err := strconv.Atoi(batch)
			if err != nil || n <= 0 {
				log.Panicf("invalid ODEGEN_RECORDING_BATCH %q", batch)
			}
			envConfig.batchSize = n
		}
	})

	return envConfig
}
