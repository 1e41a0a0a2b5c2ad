// Package config loads tool configuration with viper.
//
// Values come from, lowest precedence first: built-in defaults, an optional
// YAML file, an optional .env file (godotenv) and the process environment.
// Environment variables are bound by prefix: LOKAN_SDK_BASE_URL sets
// base_url in SDKConfig, LOKAN_SDK_LOGGING_LEVEL sets logging.level.
//
//	cfg, err := config.LoadSDKConfig(config.WithConfigFile("scenectl.yml"))
//	if err != nil {
//	    return err
//	}
//	client, err := scene.New(cfg.SceneConfig())
//
// Struct validation uses go-playground/validator tags.
package config
