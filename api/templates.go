package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "login"}}<!DOCTYPE html>
<html>
<head><title>Login</title></head>
<body>
<h1>Login</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/login">
<input type="text" name="username" placeholder="Username" required>
<input type="password" name="password" placeholder="Password" required>
<button type="submit">Login</button>
</form>
<p>No account? <a href="/signup">Sign up</a></p>
</body>
</html>{{end}}

{{define "signup"}}<!DOCTYPE html>
<html>
<head><title>Sign up</title></head>
<body>
<h1>Sign up</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="post" action="/signup">
<input type="text" name="username" placeholder="Username" required>
<input type="password" name="password" placeholder="Password" required>
<button type="submit">Sign up</button>
</form>
<p>Already registered? <a href="/login">Login</a></p>
</body>
</html>{{end}}

{{define "dashboard"}}<!DOCTYPE html>
<html>
<head><title>Dashboard</title></head>
<body>
<h1>Dashboard</h1>
<p>Signed in as {{.Username}}. <a href="/logout">Logout</a></p>
<div id="app"></div>
</body>
</html>{{end}}
`))

// renderPage executes a named page template.
func renderPage(c echo.Context, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render page")
	}
	return c.HTMLBlob(status, buf.Bytes())
}
