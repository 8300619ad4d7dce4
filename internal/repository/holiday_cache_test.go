package repository

import (
	"testing"
	"time"

	"github.com/thallyson03/ceapdesk/internal/domain"
)

func TestNewCachedHolidayRepository_NilClient(t *testing.T) {
	next := NewHolidayRepository(nil)
	if got := NewCachedHolidayRepository(next, nil, time.Minute, nil); got != next {
		t.Fatal("expected the wrapped repository back without a redis client")
	}
}

func TestHolidayCacheEncoding(t *testing.T) {
	desc := "Paixão de Cristo"
	in := []domain.Holiday{
		{ID: "h1", Name: "Sexta-feira Santa", Date: time.Date(2024, time.March, 29, 0, 0, 0, 0, time.UTC), Kind: domain.HolidayKindNational, Description: &desc},
		{ID: "h2", Name: "Natal", Date: time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC), Kind: domain.HolidayKindNational},
	}

	raw, err := encodeHolidays(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := decodeHolidays(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("decoded %d holidays", len(out))
	}
	for i := range in {
		if !out[i].Date.Equal(in[i].Date) || out[i].Name != in[i].Name || !out[i].Active {
			t.Errorf("holiday %d: got %+v", i, out[i])
		}
	}
	if out[0].Description == nil || *out[0].Description != desc {
		t.Errorf("description lost: %+v", out[0].Description)
	}
}

func TestHolidayCacheDecodeRejectsBadDate(t *testing.T) {
	if _, err := decodeHolidays([]byte(`[{"id":"x","name":"y","date":"29/03/2024"}]`)); err == nil {
		t.Fatal("expected an error for a malformed cached date")
	}
	if _, err := decodeHolidays([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for malformed json")
	}
}
