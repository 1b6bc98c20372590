package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/basket-splitter/internal/config"
	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
	"github.com/eugenenazirov/basket-splitter/internal/splitter"
)

func TestRunSplitPrintsGroups(t *testing.T) {
	cfg := config.Config{DeliveryConfigPath: "configs/delivery-config.json"}
	var out bytes.Buffer

	err := runSplit(&out, cfg, []string{"Cookies Oatmeal Raisin", "Cheese Cloth", "English Muffin"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("runSplit returned error: %v", err)
	}

	var groups map[string][]string
	if err := json.Unmarshal(out.Bytes(), &groups); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(groups) != 1 || len(groups["Parcel locker"]) != 3 {
		t.Fatalf("unexpected groups: %v", groups)
	}
}

func TestRunSplitErrors(t *testing.T) {
	t.Run("missing delivery config", func(t *testing.T) {
		cfg := config.Config{DeliveryConfigPath: filepath.Join(t.TempDir(), "missing.json")}
		err := runSplit(&bytes.Buffer{}, cfg, []string{"Garden Chair"}, zaptest.NewLogger(t))
		if !errors.Is(err, deliveryconfig.ErrConfigLoad) {
			t.Fatalf("expected ErrConfigLoad, got %v", err)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		cfg := config.Config{DeliveryConfigPath: "configs/delivery-config.json"}
		var out bytes.Buffer
		err := runSplit(&out, cfg, []string{"Flux Capacitor"}, zaptest.NewLogger(t))
		if !errors.Is(err, splitter.ErrProductNotConfigured) {
			t.Fatalf("expected ErrProductNotConfigured, got %v", err)
		}
		if out.Len() != 0 {
			t.Fatalf("expected no output on failure, got %q", out.String())
		}
	})
}
