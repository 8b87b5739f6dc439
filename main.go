package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"

	"github.com/d1nch8g/sfx/config"
	"github.com/d1nch8g/sfx/device"
	"github.com/d1nch8g/sfx/manager"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", "error", err)
	}

	// Initialize the sound system
	drv := device.NewPortaudioDriver()
	defer drv.Terminate()

	mgr := manager.New(*cfg, drv)
	if err := mgr.Initialize(config.DefaultSounds()); err != nil {
		log.Fatal("failed to initialize audio system", "error", err)
	}

	keys := os.Args[1:]
	if len(keys) == 0 {
		fmt.Println("Available sounds:")
		for _, key := range mgr.AvailableSounds() {
			fmt.Printf("  %s\n", key)
		}
		fmt.Println("\nUsage: sfx <sound_key> [sound_key ...]")
		return
	}

	// Setup signal handling
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	for _, key := range keys {
		if !mgr.Play(key) {
			log.Warn("unknown sound key", "key", key)
			continue
		}
		fmt.Printf("Playing: %s\n", key)

		select {
		case <-sig:
			fmt.Println("\nStopping...")
			mgr.StopAll()
			return
		case <-time.After(2 * time.Second):
		}
	}

	// Give the last dispatched playback time to finish
	time.Sleep(time.Second)
	mgr.StopAll()
}
