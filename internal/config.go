package internal

import (
	"fmt"
	"time"
)

type Config struct {
	Host                 string        `env:"HOST,default=localhost"`
	Port                 int           `env:"PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	Debug                bool          `env:"DEBUG,default=false"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath        string        `env:"BLUGE_FILEPATH,required=true"`
	JWTSecret            string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	EvalURL              string        `env:"EVAL_URL,required=true"`
	EvalTimeout          time.Duration `env:"EVAL_TIMEOUT,default=30s"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=32"`
	CensorMask           string        `env:"CENSOR_MASK,default=*"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=30s"`
	DefaultTopic         string        `env:"DEFAULT_TOPIC,default=open debate"`
	MatchSweepInterval   time.Duration `env:"MATCH_SWEEP_INTERVAL,default=5s"`
}

// CharacterRune parses a single-character env value.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSOR_MASK must be a single character, got %q", str)
	}
	return r[0], nil
}
