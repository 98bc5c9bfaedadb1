package discovery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractTournamentID(t *testing.T) {
	testCases := []struct {
		name   string
		page   string
		expect string
	}{
		{
			name:   "tournament link",
			page:   `<html><body><div class="game__meta"><a href="/@/someone">someone</a><a href="/tournament/T1abc">Weekly Arena</a></div></body></html>`,
			expect: "T1abc",
		},
		{
			name:   "first link wins",
			page:   `<a href="/tournament/first">a</a><a href="/tournament/second">b</a>`,
			expect: "first",
		},
		{
			name:   "no tournament",
			page:   `<html><body><a href="/swiss/abc">swiss</a><a href="/tournament">all</a></body></html>`,
			expect: "",
		},
		{
			name:   "query strings are not ids",
			page:   `<a href="/tournament/T2?page=2">b</a><a href="/tournament/T3">c</a>`,
			expect: "T3",
		},
		{
			name:   "link inside noscript",
			page:   `<html><body><noscript><a href="/tournament/T1">Arena</a></noscript></body></html>`,
			expect: "T1",
		},
		{
			name:   "anchor preferred over raw text",
			page:   `<noscript><a href="/tournament/hidden">h</a></noscript><a href="/tournament/shown">s</a>`,
			expect: "shown",
		},
		{
			name:   "empty page",
			page:   ``,
			expect: "",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, ExtractTournamentID([]byte(test.page)))
		})
	}
}
