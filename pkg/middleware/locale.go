package middleware

import (
	"net/http"

	"fleet-dispatch/pkg/utils"

	"golang.org/x/text/language"
)

var supported = language.NewMatcher([]language.Tag{language.English, language.Japanese})

// Locale stores the best supported Accept-Language match on the context.
// "?lang=" overrides the header.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept-Language")
		if lang := r.URL.Query().Get("lang"); lang != "" {
			accept = lang
		}
		if accept == "" {
			next.ServeHTTP(w, r)
			return
		}

		tag, _ := language.MatchStrings(supported, accept)
		base, _ := tag.Base()
		ctx := utils.SetLocaleContext(r.Context(), base.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
