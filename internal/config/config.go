package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const defaultChannelID = "AmazoApp"
const defaultChannelKey = "AmazoKey001"
const defaultListenAddr = ":8080"
const defaultAccountServiceURL = "http://localhost:8081"
const defaultChatBaseURL = "https://wa.me/244900000000"
const defaultCurrencySuffix = "Kz"
const defaultWithdrawalFeeRate = "0.12"
const defaultCommissionRates = "0.10,0.03,0.01"
const defaultPendingSLAHours = 24
const defaultDraftTTLHours = 48

type Config struct {
	ListenAddr        string
	DatabaseDSN       string
	MigrationsDir     string
	ChannelID         string
	ChannelKey        string
	RedisAddr         string
	RedisPassword     string
	GraphURI          string
	GraphDatabase     string
	GraphUsername     string
	GraphPassword     string
	AccountServiceURL string
	ChatBaseURL       string
	CurrencySuffix    string
	PendingSLAWindow  time.Duration
	DraftTTL          time.Duration
	WithdrawalFeeRate decimal.Decimal
	CommissionRates   []decimal.Decimal
}

func Load() (Config, error) {
	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	channelID := strings.TrimSpace(os.Getenv("CHANNEL_ID"))
	if channelID == "" {
		channelID = defaultChannelID
	}

	channelKey := strings.TrimSpace(os.Getenv("CHANNEL_KEY"))
	if channelKey == "" {
		channelKey = defaultChannelKey
	}

	accountServiceURL := strings.TrimSpace(os.Getenv("ACCOUNT_SERVICE_URL"))
	if accountServiceURL == "" {
		accountServiceURL = defaultAccountServiceURL
	}

	chatBaseURL := strings.TrimSpace(os.Getenv("CHAT_BASE_URL"))
	if chatBaseURL == "" {
		chatBaseURL = defaultChatBaseURL
	}

	currencySuffix := strings.TrimSpace(os.Getenv("CURRENCY_SUFFIX"))
	if currencySuffix == "" {
		currencySuffix = defaultCurrencySuffix
	}

	slaHours, err := loadHours("PENDING_SLA_HOURS", defaultPendingSLAHours)
	if err != nil {
		return Config{}, err
	}

	draftHours, err := loadHours("DRAFT_TTL_HOURS", defaultDraftTTLHours)
	if err != nil {
		return Config{}, err
	}

	feeRate, err := loadRate("WITHDRAWAL_FEE_RATE", defaultWithdrawalFeeRate)
	if err != nil {
		return Config{}, err
	}

	commissionRates, err := loadCommissionRates()
	if err != nil {
		return Config{}, err
	}

	migrationsDir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR"))
	if migrationsDir == "" {
		migrationsDir = filepath.Join("migrations")
	}

	return Config{
		ListenAddr:        listenAddr,
		DatabaseDSN:       normalizeConnectionString(strings.TrimSpace(os.Getenv("DATABASE_DSN"))),
		MigrationsDir:     migrationsDir,
		ChannelID:         channelID,
		ChannelKey:        channelKey,
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		GraphURI:          strings.TrimSpace(os.Getenv("GRAPH_URI")),
		GraphDatabase:     strings.TrimSpace(os.Getenv("GRAPH_DATABASE")),
		GraphUsername:     strings.TrimSpace(os.Getenv("GRAPH_USERNAME")),
		GraphPassword:     strings.TrimSpace(os.Getenv("GRAPH_PASSWORD")),
		AccountServiceURL: accountServiceURL,
		ChatBaseURL:       chatBaseURL,
		CurrencySuffix:    currencySuffix,
		PendingSLAWindow:  time.Duration(slaHours) * time.Hour,
		DraftTTL:          time.Duration(draftHours) * time.Hour,
		WithdrawalFeeRate: feeRate,
		CommissionRates:   commissionRates,
	}, nil
}

func loadHours(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer number of hours", key)
	}

	return hours, nil
}

func loadRate(key string, fallback string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		raw = fallback
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s must be a decimal fraction: %w", key, err)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Decimal{}, fmt.Errorf("%s must be within [0, 1)", key)
	}

	return rate, nil
}

func loadCommissionRates() ([]decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv("COMMISSION_RATES"))
	if raw == "" {
		raw = defaultCommissionRates
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("COMMISSION_RATES must list exactly three level rates")
	}

	rates := make([]decimal.Decimal, 0, len(parts))
	for _, part := range parts {
		rate, err := decimal.NewFromString(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("COMMISSION_RATES entry %q must be a decimal fraction: %w", part, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("COMMISSION_RATES entry %q must not be negative", part)
		}
		rates = append(rates, rate)
	}

	for i := 1; i < len(rates); i++ {
		if rates[i].GreaterThan(rates[i-1]) {
			return nil, fmt.Errorf("COMMISSION_RATES must not increase with level")
		}
	}

	return rates, nil
}

func normalizeConnectionString(raw string) string {
	if raw == "" {
		return ""
	}

	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	hasSSLMode := false

	for _, part := range parts {
		p := strings.TrimSpace(part)
		if p == "" {
			continue
		}

		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(kv[0]))
		val := strings.TrimSpace(kv[1])

		switch key {
		case "host":
			out = append(out, "host="+val)
		case "port":
			out = append(out, "port="+val)
		case "database":
			out = append(out, "dbname="+val)
		case "username":
			out = append(out, "user="+val)
		case "password":
			out = append(out, "password="+val)
		case "timeout", "connect timeout":
			out = append(out, "connect_timeout="+val)
		case "commandtimeout", "command timeout":
			out = append(out, "statement_timeout="+val+"s")
		case "sslmode":
			hasSSLMode = true
			out = append(out, "sslmode="+val)
		default:
			out = append(out, key+"="+val)
		}
	}

	if len(out) == 0 {
		return raw
	}

	if !hasSSLMode {
		out = append(out, "sslmode=disable")
	}

	return strings.Join(out, " ")
}
