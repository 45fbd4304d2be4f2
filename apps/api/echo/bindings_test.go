package echoapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/codedaily/apps/api/echo"
	"github.com/trezcool/codedaily/core"
)

func TestOrdering_Bind(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []core.DBOrdering
	}{
		{name: "no param", query: ""},
		{name: "empty param", query: "?ordering="},
		{name: "ascending", query: "?ordering=score", want: []core.DBOrdering{{Field: "score", Ascending: true}}},
		{
			name: "mixed", query: "?ordering=-score,%20id",
			want: []core.DBOrdering{{Field: "score"}, {Field: "id", Ascending: true}},
		},
		{name: "unknown fields dropped", query: "?ordering=lol,-password,score", want: []core.DBOrdering{{Field: "score", Ascending: true}}},
		{name: "first direction wins", query: "?ordering=-id,id", want: []core.DBOrdering{{Field: "id"}}},
		{name: "bare minus", query: "?ordering=-,,", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			ctx := echo.New().NewContext(req, httptest.NewRecorder())

			ord := &Ordering{Allowed: []string{"score", "id"}}
			ord.Bind(ctx)
			assert.Equal(t, tt.want, ord.Orderings)
		})
	}
}
