// Package config loads engine configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	WAL      WALConfig
	Outbox   OutboxConfig
	Snapshot SnapshotConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	GRPCPort       int
	MaxMessageSize int
}

type EngineConfig struct {
	Symbol          string
	DepthLevels     int
	RetireRingSize  int
	ReclaimInterval time.Duration
}

type WALConfig struct {
	Dir             string
	SegmentSize     int64
	SegmentDuration time.Duration
}

type OutboxConfig struct {
	Dir string
}

type SnapshotConfig struct {
	Dir      string
	Interval time.Duration
}

type KafkaConfig struct {
	Enabled    bool
	Brokers    []string
	TradeTopic string
	DepthTopic string
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			GRPCPort:       getEnvInt("KESTREL_GRPC_PORT", 50051),
			MaxMessageSize: getEnvInt("KESTREL_MAX_MESSAGE_SIZE", 4*1024*1024),
		},
		Engine: EngineConfig{
			Symbol:          getEnvString("KESTREL_SYMBOL", "BTC-USD"),
			DepthLevels:     getEnvInt("KESTREL_DEPTH_LEVELS", 10),
			RetireRingSize:  getEnvInt("KESTREL_RETIRE_RING_SIZE", 1<<16),
			ReclaimInterval: getEnvDuration("KESTREL_RECLAIM_INTERVAL", 50*time.Millisecond),
		},
		WAL: WALConfig{
			Dir:             getEnvString("KESTREL_WAL_DIR", "data/wal"),
			SegmentSize:     getEnvInt64("KESTREL_WAL_SEGMENT_SIZE", 64*1024*1024),
			SegmentDuration: getEnvDuration("KESTREL_WAL_SEGMENT_DURATION", time.Hour),
		},
		Outbox: OutboxConfig{
			Dir: getEnvString("KESTREL_OUTBOX_DIR", "data/outbox"),
		},
		Snapshot: SnapshotConfig{
			Dir:      getEnvString("KESTREL_SNAPSHOT_DIR", "data/snapshot"),
			Interval: getEnvDuration("KESTREL_SNAPSHOT_INTERVAL", 30*time.Second),
		},
		Kafka: KafkaConfig{
			Enabled:    getEnvBool("KESTREL_KAFKA_ENABLED", false),
			Brokers:    getEnvList("KESTREL_KAFKA_BROKERS", []string{"localhost:9092"}),
			TradeTopic: getEnvString("KESTREL_KAFKA_TRADE_TOPIC", "kestrel.trades"),
			DepthTopic: getEnvString("KESTREL_KAFKA_DEPTH_TOPIC", "kestrel.depth"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.GRPCPort <= 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.Server.GRPCPort)
	}
	if c.Engine.Symbol == "" {
		return fmt.Errorf("symbol must not be empty")
	}
	if c.Engine.DepthLevels <= 0 {
		return fmt.Errorf("invalid depth levels: %d", c.Engine.DepthLevels)
	}
	if n := c.Engine.RetireRingSize; n <= 0 || n&(n-1) != 0 {
		return fmt.Errorf("retire ring size must be a power of two: %d", n)
	}
	if c.WAL.SegmentSize <= 0 {
		return fmt.Errorf("invalid wal segment size: %d", c.WAL.SegmentSize)
	}
	if c.Snapshot.Interval <= 0 {
		return fmt.Errorf("invalid snapshot interval: %s", c.Snapshot.Interval)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled but no brokers configured")
	}
	return nil
}

// String is safe to log.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Server{GRPC:%d} Engine{Symbol:%s, Depth:%d} WAL{Dir:%s} Snapshot{Every:%s} Kafka{Enabled:%v}",
		c.Server.GRPCPort, c.Engine.Symbol, c.Engine.DepthLevels,
		c.WAL.Dir, c.Snapshot.Interval, c.Kafka.Enabled,
	)
}

// ---- env helpers ----

func getEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
