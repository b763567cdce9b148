package config

import "testing"

func TestParseEnv(t *testing.T) {
	type settings struct {
		Addr    string   `env:"STOCKROOM_TEST_ADDR"`
		Hosts   []string `env:"STOCKROOM_TEST_HOSTS" envSeparator:","`
		Require bool     `env:"STOCKROOM_TEST_REQUIRE"`
	}

	t.Setenv("STOCKROOM_TEST_ADDR", "localhost:9000")
	t.Setenv("STOCKROOM_TEST_HOSTS", "a.example,b.example")
	t.Setenv("STOCKROOM_TEST_REQUIRE", "true")

	var got settings
	if err := ParseEnv(&got); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if got.Addr != "localhost:9000" {
		t.Errorf("Addr = %q, want %q", got.Addr, "localhost:9000")
	}
	if len(got.Hosts) != 2 || got.Hosts[0] != "a.example" || got.Hosts[1] != "b.example" {
		t.Errorf("Hosts = %v, want [a.example b.example]", got.Hosts)
	}
	if !got.Require {
		t.Error("Require = false, want true")
	}
}

func TestParseEnvInvalidValue(t *testing.T) {
	type settings struct {
		Limit int `env:"STOCKROOM_TEST_LIMIT"`
	}

	t.Setenv("STOCKROOM_TEST_LIMIT", "not-a-number")

	var got settings
	if err := ParseEnv(&got); err == nil {
		t.Fatal("expected error for invalid int value")
	}
}
