package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	KeySecretID     = "AWS_SECRETS_MANAGER_SECRET_ID"
	KeySecretRegion = "AWS_SECRETS_MANAGER_REGION"
	KeySecretStage  = "AWS_SECRETS_MANAGER_VERSION_STAGE"

	defaultVersionStage = "AWSCURRENT"
)

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// LoadEnv populates the process environment before configuration is read:
// first from an AWS Secrets Manager JSON secret when one is configured, then
// from a local .env file. Neither source overrides variables that are already set.
func LoadEnv(ctx context.Context, envFile string, logger *logrus.Logger) {
	if secretID := os.Getenv(KeySecretID); secretID != "" {
		api, err := NewSecretsManagerClient(ctx, os.Getenv(KeySecretRegion))
		if err != nil {
			logger.WithError(err).Warn("Skipping AWS Secrets Manager load")
		} else {
			stage := os.Getenv(KeySecretStage)
			if stage == "" {
				stage = defaultVersionStage
			}
			applied, err := LoadSecretsIntoEnv(ctx, api, secretID, stage)
			if err != nil {
				logger.WithError(err).Warn("Skipping AWS Secrets Manager load")
			} else {
				logger.WithFields(logrus.Fields{
					"secret_id": secretID,
					"applied":   applied,
				}).Info("Loaded environment from AWS Secrets Manager")
			}
		}
	}

	if envFile == "" {
		envFile = os.Getenv(KeyEnvFilePath)
	}
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.WithField("path", envFile).Debug("No .env file found, using system environment")
	}
}

// NewSecretsManagerClient builds a client from the default AWS credential chain.
func NewSecretsManagerClient(ctx context.Context, region string) (*secretsmanager.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// LoadSecretsIntoEnv fetches a JSON object secret and copies each key into the
// environment unless it is already set. It returns the number of variables applied.
func LoadSecretsIntoEnv(ctx context.Context, api SecretsManagerAPI, secretID, versionStage string) (int, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}
	if versionStage != "" {
		input.VersionStage = aws.String(versionStage)
	}

	output, err := api.GetSecretValue(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("fetching secret %s: %w", secretID, err)
	}

	var payload string
	switch {
	case output.SecretString != nil:
		payload = *output.SecretString
	case len(output.SecretBinary) > 0:
		payload = string(output.SecretBinary)
	default:
		return 0, fmt.Errorf("secret %s has no payload", secretID)
	}

	var kv map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &kv); err != nil {
		return 0, fmt.Errorf("parsing secret %s as JSON: %w", secretID, err)
	}

	applied := 0
	for key, val := range kv {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return applied, fmt.Errorf("setting env %s from secret: %w", key, err)
		}
		applied++
	}
	return applied, nil
}
