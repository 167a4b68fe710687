package utils

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort string `yaml:"APP_PORT"`
	LogMode string `yaml:"LOG_MODE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Owner tokens
	JWTSecret string `yaml:"JWT_SECRET"`
	JWTIssuer string `yaml:"JWT_ISSUER"`

	// Cache configuration
	RedisAddr    string `yaml:"REDIS_ADDR"`
	RedisDB      string `yaml:"REDIS_DB"`
	CachePrefix  string `yaml:"CACHE_PREFIX"`
	CacheTimeout string `yaml:"CACHE_TIMEOUT"`

	// AWS S3 configuration
	AWSS3Bucket        string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region        string `yaml:"AWS_S3_REGION"`
	AWSAccessKey       string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey       string `yaml:"AWS_SECRET_KEY"`
	ThumbnailURLExpiry string `yaml:"THUMBNAIL_URL_EXPIRY"`
	MediaURL           string `yaml:"MEDIA_URL"`

	// Catalog behaviour
	PhotoOrderGap              string `yaml:"PHOTO_ORDER_GAP"`
	RecipeRecommendationsCount string `yaml:"RECIPE_RECOMMENDATIONS_COUNT"`
	CategoryOrderDefault       string `yaml:"CATEGORY_ORDER_DEFAULT"`
	DefaultCookbookTitle       string `yaml:"DEFAULT_COOKBOOK_TITLE"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":                     "8080",
	"LOG_MODE":                     "dev",
	"JWT_ISSUER":                   "yummy",
	"CACHE_PREFIX":                 "yummy",
	"CACHE_TIMEOUT":                "600",
	"REDIS_DB":                     "0",
	"THUMBNAIL_URL_EXPIRY":         "3600",
	"MEDIA_URL":                    "/media",
	"PHOTO_ORDER_GAP":              "10",
	"RECIPE_RECOMMENDATIONS_COUNT": "3",
	"CATEGORY_ORDER_DEFAULT":       "-created",
	"DEFAULT_COOKBOOK_TITLE":       "Favourite recipes",
}

func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func fileValue(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "LOG_MODE":
		return config.LogMode
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_ISSUER":
		return config.JWTIssuer
	case "REDIS_ADDR":
		return config.RedisAddr
	case "REDIS_DB":
		return config.RedisDB
	case "CACHE_PREFIX":
		return config.CachePrefix
	case "CACHE_TIMEOUT":
		return config.CacheTimeout
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "THUMBNAIL_URL_EXPIRY":
		return config.ThumbnailURLExpiry
	case "MEDIA_URL":
		return config.MediaURL
	case "PHOTO_ORDER_GAP":
		return config.PhotoOrderGap
	case "RECIPE_RECOMMENDATIONS_COUNT":
		return config.RecipeRecommendationsCount
	case "CATEGORY_ORDER_DEFAULT":
		return config.CategoryOrderDefault
	case "DEFAULT_COOKBOOK_TITLE":
		return config.DefaultCookbookTitle
	default:
		return ""
	}
}

// GetConfig resolves key from the environment, then config.yaml, then the
// built-in default.
func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v := fileValue(key); v != "" {
		return v
	}
	return defaults[key]
}

func GetConfigInt(key string) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		d, _ := strconv.Atoi(defaults[key])
		return d
	}
	return v
}

// GetConfigSeconds reads an integer number of seconds as a duration.
func GetConfigSeconds(key string) time.Duration {
	return time.Duration(GetConfigInt(key)) * time.Second
}
