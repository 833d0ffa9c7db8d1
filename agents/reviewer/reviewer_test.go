package reviewer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tripweave/tripweave/schema"
)

type fakeSearcher struct {
	reviews map[string][]schema.Review
	queries []string
	fail    bool
}

func (f *fakeSearcher) Run(_ context.Context, input *schema.ReviewQuery) (*schema.ReviewResult, error) {
	f.queries = append(f.queries, input.Query)
	if f.fail {
		return &schema.ReviewResult{Result: schema.Fail(fmt.Errorf("engine down"))}, fmt.Errorf("engine down")
	}
	for name, reviews := range f.reviews {
		if strings.HasPrefix(input.Query, name) {
			return &schema.ReviewResult{Result: schema.Ok(), Reviews: reviews}, nil
		}
	}
	return &schema.ReviewResult{Result: schema.Ok()}, nil
}

func testHotels() []schema.HotelOffer {
	return []schema.HotelOffer{
		{Name: "Asakusa View Hotel", Rating: 4.2},
		{Name: "Namba Riverside Inn", Rating: 3.8},
	}
}

func TestAnalyzeRequiresHotels(t *testing.T) {
	r := New(&fakeSearcher{}, nil)
	if _, _, err := r.Analyze(context.Background(), &Request{Destination: "Tokyo"}); err == nil {
		t.Fatal("expected an error without hotels")
	}
}

func TestAnalyzeRequiresReviews(t *testing.T) {
	r := New(&fakeSearcher{}, nil)
	_, _, err := r.Analyze(context.Background(), &Request{Destination: "Tokyo", Hotels: testHotels()})
	if err == nil {
		t.Fatal("expected an error when no reviews exist")
	}
}

func TestGatherQueriesAndGrouping(t *testing.T) {
	searcher := &fakeSearcher{
		reviews: map[string][]schema.Review{
			"Asakusa View Hotel": {
				{HotelName: "Asakusa View Hotel", Text: "Great view of the pagoda", Rating: 4.5},
				{HotelName: "Asakusa View Hotel", Text: "Rooms a bit dated", Rating: 3.5},
			},
		},
	}
	r := New(searcher, nil)
	req := &Request{Destination: "Tokyo", Hotels: testHotels()}
	grouped, total := r.gather(context.Background(), req)
	if total != 2 {
		t.Fatalf("expected 2 reviews, got %d", total)
	}
	if len(grouped) != 1 {
		t.Fatalf("expected reviews grouped under one hotel, got %d", len(grouped))
	}
	if len(searcher.queries) != 2 {
		t.Fatalf("expected one query per hotel, got %v", searcher.queries)
	}
	if searcher.queries[0] != "Asakusa View Hotel Tokyo" {
		t.Errorf("unexpected query %q", searcher.queries[0])
	}
}

func TestGatherSkipsFailedLookups(t *testing.T) {
	r := New(&fakeSearcher{fail: true}, nil)
	req := &Request{Destination: "Tokyo", Hotels: testHotels()}
	grouped, total := r.gather(context.Background(), req)
	if total != 0 || len(grouped) != 0 {
		t.Fatalf("failed lookups should yield nothing, got %d/%d", total, len(grouped))
	}
}

func TestAnalysisPromptContent(t *testing.T) {
	req := &Request{Destination: "Tokyo", Hotels: testHotels()}
	grouped := map[string][]schema.Review{
		"Asakusa View Hotel": {
			{Text: strings.Repeat("x", 300), Rating: 4.0},
		},
	}
	prompt := analysisPrompt(req, grouped)
	if !strings.Contains(prompt, "Asakusa View Hotel") {
		t.Error("prompt missing the hotel name")
	}
	if strings.Contains(prompt, "Namba Riverside Inn (") {
		t.Error("hotel without reviews should not get a section")
	}
	if strings.Contains(prompt, strings.Repeat("x", 201)) {
		t.Error("review text should be truncated")
	}
	if !strings.Contains(prompt, "[4.0]") {
		t.Error("prompt missing the review rating")
	}
}
