package api

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext(t *testing.T, target string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestBuildUserFilterWhitelist(t *testing.T) {
	c := testContext(t, "/api/users?stage=launched&plan=pro&banned=true&is_admin=true&$where=1")

	filter := buildUserFilter(c)

	if got := filter["stage"]; got != "launched" {
		t.Errorf("stage = %v, want launched", got)
	}
	if got := filter["plan"]; got != "pro" {
		t.Errorf("plan = %v, want pro", got)
	}
	if got := filter["is_banned"]; got != true {
		t.Errorf("is_banned = %v, want true", got)
	}
	// Parameters outside the whitelist must not reach the store.
	if len(filter) != 3 {
		t.Errorf("filter has %d keys, want 3: %v", len(filter), filter)
	}
}

func TestBuildUserFilterSearchEscapesRegex(t *testing.T) {
	c := testContext(t, "/api/users?search=a.b%2Bc")

	filter := buildUserFilter(c)

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3-way $or, got %v", filter["$or"])
	}
	pattern := or[0]["email"].(primitive.Regex)
	if pattern.Pattern != `a\.b\+c` {
		t.Errorf("pattern = %q, want metacharacters escaped", pattern.Pattern)
	}
	if pattern.Options != "i" {
		t.Errorf("options = %q, want case-insensitive", pattern.Options)
	}
}

func TestBuildUserFilterEmpty(t *testing.T) {
	c := testContext(t, "/api/users")

	if filter := buildUserFilter(c); len(filter) != 0 {
		t.Errorf("expected empty filter, got %v", filter)
	}
}

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		raw      string
		fallback int
		want     int
	}{
		{"", 20, 20},
		{"3", 20, 3},
		{"0", 20, 20},
		{"-5", 20, 20},
		{"abc", 20, 20},
	}

	for _, tt := range tests {
		if got := parsePositiveInt(tt.raw, tt.fallback); got != tt.want {
			t.Errorf("parsePositiveInt(%q, %d) = %d, want %d", tt.raw, tt.fallback, got, tt.want)
		}
	}
}
