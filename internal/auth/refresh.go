package auth

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"
)

const refreshTokenFile = "refresh_tokens.json"

var refreshTokenStore = map[string]string{}
var mu sync.Mutex

func RefreshTokens() map[string]string {
	if len(refreshTokenStore) == 0 {
		exists, err := fileExists(refreshTokenFile)
		if err != nil {
			log.Println("Error loading refresh token file")
		}

		if exists {
			if err := loadRefreshTokens(); err != nil {
				log.Printf("Error parsing refresh token file: %v", err)
			}
		}
	}

	return refreshTokenStore
}

func SetRefreshToken(key string, value string) {
	mu.Lock()
	refreshTokenStore[key] = value
	if err := saveRefreshTokens(); err != nil {
		log.Printf("Error saving refresh tokens: %v", err)
	}
	mu.Unlock()
}

func DeleteRefreshToken(key string) {
	mu.Lock()
	delete(refreshTokenStore, key)
	if err := saveRefreshTokens(); err != nil {
		log.Printf("Error saving refresh tokens: %v", err)
	}
	mu.Unlock()
}

// StartRefreshTokenCleaner periodically reloads the store from disk so
// stale entries removed by another replica do not linger in memory.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		if err := loadRefreshTokens(); err != nil {
			log.Printf("Error reloading refresh tokens: %v", err)
		}
		mu.Unlock()
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, err
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]string{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() error {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(refreshTokenFile, data, 0600)
}
