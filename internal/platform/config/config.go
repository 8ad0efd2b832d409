package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/oakhost/oakhost_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret string
	JWTIssuer string

	FrontendBaseURL string

	// Pricing
	SettlementCurrency   string
	IDProtectionPriceUSD decimal.Decimal
	DefaultUSDRate       decimal.Decimal // fallback USD -> settlement rate
	DefaultRateMargin    decimal.Decimal
	QuoteMaxAge          time.Duration

	// Payment verification retry policy
	VerifyMaxAttempts int
	VerifyBaseDelay   time.Duration

	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string

	// Registrar API
	RegistrarBaseURL      string
	RegistrarAPIUser      string
	RegistrarAPIKey       string
	RegistrarClientID     string
	RegistrarClientSecret string
	RegistrarTokenURL     string
	RegistrarTimeout      time.Duration

	// Provisioning
	ProvisioningEndpoint string

	// Analytics
	PosthogAPIKey   string
	PosthogEndpoint string

	// HostingPlans is the static plan catalog, keyed by plan ref.
	HostingPlans map[string]domain.HostingPlan
}

// defaultHostingPlansJSON is used when HOSTING_PLANS_JSON is unset so a dev
// instance works out of the box.
const defaultHostingPlansJSON = `[
	{"ref":"starter","name":"Starter Hosting","monthlyPrice":"4.99","currencyCode":"GBP"},
	{"ref":"business","name":"Business Hosting","monthlyPrice":"9.99","currencyCode":"GBP"},
	{"ref":"pro","name":"Pro Hosting","monthlyPrice":"19.99","currencyCode":"GBP"}
]`

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "oakhost")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("SETTLEMENT_CURRENCY", "GBP")
	viper.SetDefault("ID_PROTECTION_PRICE_USD", "9.95")
	viper.SetDefault("DEFAULT_USD_RATE", "0.79")
	viper.SetDefault("DEFAULT_RATE_MARGIN", "0.05")
	viper.SetDefault("QUOTE_MAX_AGE", "30m")
	viper.SetDefault("VERIFY_MAX_ATTEMPTS", 4)
	viper.SetDefault("VERIFY_BASE_DELAY", "2s")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("CHECKOUT_SUCCESS_URL", "")
	viper.SetDefault("CHECKOUT_CANCEL_URL", "")
	viper.SetDefault("REGISTRAR_BASE_URL", "")
	viper.SetDefault("REGISTRAR_API_USER", "")
	viper.SetDefault("REGISTRAR_API_KEY", "")
	viper.SetDefault("REGISTRAR_CLIENT_ID", "")
	viper.SetDefault("REGISTRAR_CLIENT_SECRET", "")
	viper.SetDefault("REGISTRAR_TOKEN_URL", "")
	viper.SetDefault("REGISTRAR_TIMEOUT", "10s")
	viper.SetDefault("PROVISIONING_ENDPOINT", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("HOSTING_PLANS_JSON", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.SettlementCurrency = viper.GetString("SETTLEMENT_CURRENCY")

	var err error
	cfg.IDProtectionPriceUSD, err = parseDecimal("ID_PROTECTION_PRICE_USD")
	if err != nil {
		return nil, err
	}
	cfg.DefaultUSDRate, err = parseDecimal("DEFAULT_USD_RATE")
	if err != nil {
		return nil, err
	}
	cfg.DefaultRateMargin, err = parseDecimal("DEFAULT_RATE_MARGIN")
	if err != nil {
		return nil, err
	}

	cfg.QuoteMaxAge = parseDuration("QUOTE_MAX_AGE", 30*time.Minute)
	cfg.VerifyMaxAttempts = viper.GetInt("VERIFY_MAX_ATTEMPTS")
	cfg.VerifyBaseDelay = parseDuration("VERIFY_BASE_DELAY", 2*time.Second)

	cfg.StripeSecretKey = viper.GetString("STRIPE_SECRET_KEY")
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Checkout will not function.")
	}
	cfg.StripeWebhookSecret = viper.GetString("STRIPE_WEBHOOK_SECRET")
	if cfg.StripeWebhookSecret == "" {
		log.Println("Warning: STRIPE_WEBHOOK_SECRET not set. Webhook verification will not function.")
	}

	cfg.CheckoutSuccessURL = viper.GetString("CHECKOUT_SUCCESS_URL")
	if cfg.CheckoutSuccessURL == "" {
		cfg.CheckoutSuccessURL = cfg.FrontendBaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cfg.CheckoutCancelURL = viper.GetString("CHECKOUT_CANCEL_URL")
	if cfg.CheckoutCancelURL == "" {
		cfg.CheckoutCancelURL = cfg.FrontendBaseURL + "/checkout/cancelled"
	}

	cfg.RegistrarBaseURL = viper.GetString("REGISTRAR_BASE_URL")
	if cfg.RegistrarBaseURL == "" {
		log.Println("Warning: REGISTRAR_BASE_URL not set. Availability checks will not function.")
	}
	cfg.RegistrarAPIUser = viper.GetString("REGISTRAR_API_USER")
	cfg.RegistrarAPIKey = viper.GetString("REGISTRAR_API_KEY")
	cfg.RegistrarClientID = viper.GetString("REGISTRAR_CLIENT_ID")
	cfg.RegistrarClientSecret = viper.GetString("REGISTRAR_CLIENT_SECRET")
	cfg.RegistrarTokenURL = viper.GetString("REGISTRAR_TOKEN_URL")
	cfg.RegistrarTimeout = parseDuration("REGISTRAR_TIMEOUT", 10*time.Second)

	cfg.ProvisioningEndpoint = viper.GetString("PROVISIONING_ENDPOINT")
	if cfg.ProvisioningEndpoint == "" {
		log.Println("Warning: PROVISIONING_ENDPOINT not set. Activation dispatch will be logged only.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.HostingPlans, err = parseHostingPlans(viper.GetString("HOSTING_PLANS_JSON"))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseDecimal(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func parseHostingPlans(raw string) (map[string]domain.HostingPlan, error) {
	if raw == "" {
		raw = defaultHostingPlansJSON
	}
	var plans []domain.HostingPlan
	if err := json.Unmarshal([]byte(raw), &plans); err != nil {
		return nil, fmt.Errorf("invalid HOSTING_PLANS_JSON: %w", err)
	}
	byRef := make(map[string]domain.HostingPlan, len(plans))
	for _, p := range plans {
		if p.Ref == "" {
			return nil, fmt.Errorf("invalid HOSTING_PLANS_JSON: plan with empty ref")
		}
		byRef[p.Ref] = p
	}
	return byRef, nil
}
