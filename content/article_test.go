package content_test

import (
	"strings"
	"testing"

	"github.com/urandom/newsroom/content"
)

func TestArticle_Validate(t *testing.T) {
	type fields struct {
		Title    string
		URL      string
		Category content.Category
	}
	tests := []struct {
		name    string
		fields  fields
		wantErr bool
	}{
		{"valid", fields{Title: "title", URL: "http://sugr.org"}, false},
		{"valid with category", fields{URL: "http://sugr.org", Category: content.CategoryOthers}, false},
		{"uncategorized", fields{URL: "http://sugr.org", Category: content.Uncategorized}, false},
		{"url not absolute", fields{URL: "sugr.org"}, true},
		{"no url", fields{Title: "title"}, true},
		{"long title", fields{Title: strings.Repeat("a", 256), URL: "http://sugr.org"}, true},
		{"unknown category", fields{URL: "http://sugr.org", Category: "Sports"}, true},
		{"nothing", fields{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := content.Article{
				Title:    tt.fields.Title,
				URL:      tt.fields.URL,
				Category: tt.fields.Category,
			}
			err := a.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Article.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !content.IsValidationError(err) {
				t.Errorf("Article.Validate() error = %v, want a validation error", err)
			}
		})
	}
}

func TestArticle_Categorized(t *testing.T) {
	tests := []struct {
		name     string
		category content.Category
		want     content.Category
	}{
		{"empty", "", content.Uncategorized},
		{"assigned", content.CategoryDisaster, content.CategoryDisaster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := content.Article{URL: "http://sugr.org", Category: tt.category}
			if got := a.Categorized().Category; got != tt.want {
				t.Errorf("Article.Categorized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		label   string
		want    content.Category
		wantErr bool
	}{
		{"unrest", "Terrorism / protest / political unrest / riot", content.CategoryUnrest, false},
		{"positive", "Positive/Uplifting", content.CategoryPositive, false},
		{"uncategorized", "Uncategorized", content.Uncategorized, false},
		{"case matters", "others", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := content.ParseCategory(tt.label)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseCategory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseCategory() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCategories_FitColumn(t *testing.T) {
	for _, c := range append(content.Categories, content.Uncategorized) {
		if len(c) > content.MaxCategoryLength {
			t.Errorf("category %q is wider than %d", c, content.MaxCategoryLength)
		}
	}
}

func TestQueryOptions_Apply(t *testing.T) {
	var o content.QueryOptions
	o.Apply([]content.QueryOpt{content.Paging(10, 5), content.ForCategory(content.CategoryOthers), content.OlderFirst})

	if o.Limit != 10 || o.Offset != 5 {
		t.Errorf("paging = %d/%d, want 10/5", o.Limit, o.Offset)
	}
	if o.Category != content.CategoryOthers {
		t.Errorf("category = %v, want %v", o.Category, content.CategoryOthers)
	}
	if !o.OlderFirst {
		t.Error("older first not set")
	}
}
