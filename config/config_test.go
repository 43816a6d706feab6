package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil { // no .env here
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "9090")
	t.Setenv("ADVISORY_TIMEOUT_MS", "2500")
	t.Setenv("ADVISORY_RETRIES", "-1")
	t.Setenv("KB_ALLOWED_DOMAINS", " icar.org.in, ,agritech.tnau.ac.in ")
	t.Setenv("DEFAULT_LOCALE", "HI")
	t.Setenv("LLM_ENDPOINT", "")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DBPath != "agroscore.db" {
		t.Errorf("port %q db %q", cfg.Port, cfg.DBPath)
	}
	if cfg.AdvisoryTimeout != 2500*time.Millisecond || cfg.AdvisoryBreakerOpen != 30*time.Second {
		t.Errorf("timeouts %v %v", cfg.AdvisoryTimeout, cfg.AdvisoryBreakerOpen)
	}
	if cfg.AdvisoryRetries != 2 {
		t.Errorf("negative retries accepted: %d", cfg.AdvisoryRetries)
	}
	if !reflect.DeepEqual(cfg.KBAllowedDomains, []string{"icar.org.in", "agritech.tnau.ac.in"}) {
		t.Errorf("domains = %q", cfg.KBAllowedDomains)
	}
	if cfg.DefaultLocale != "hi" || cfg.LLMEndpoint != "" {
		t.Errorf("locale %q endpoint %q", cfg.DefaultLocale, cfg.LLMEndpoint)
	}
}
