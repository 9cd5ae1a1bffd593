// Package templates contains the html templates of the emails sent to the users
package templates

import (
	"bytes"
	"html/template"
	"strings"
)

const button = `
      .goto {
        align-items: center;
        background-color: #ffffff;
        border: 1px solid rgba(0, 0, 0, 0.1);
        border-radius: 0.25rem;
        box-shadow: rgba(0, 0, 0, 0.02) 0 1px 3px 0;
        color: rgba(0, 0, 0, 0.85);
        display: inline-flex;
        font-family: system-ui, -apple-system, "Helvetica Neue", Helvetica, Arial, sans-serif;
        font-size: 16px;
        font-weight: 600;
        justify-content: center;
        min-height: 3rem;
        padding: calc(0.875rem - 1px) calc(1.5rem - 1px);
        text-decoration: none;
      }
`

var (
	verificationTmpl = template.Must(template.New("verification").Parse(`
<html>
  <head>
    <style>
      .container {
        display: flex;
        flex-direction: row;
        align-items: center;
        justify-content: center;
        width: 100%;
        margin-top: 10px;
        column-gap: 20px;
      }
      .block {
        display: flex;
        border: 2px solid black;
        border-radius: 20%;
        width: 50px;
        height: 50px;
        align-items: center;
        justify-content: center;
      }
    </style>
  </head>
  <body>
    <h1>Blog</h1>
    <p>Hi {{.Name}},</p>
    <strong>Use the code below to verify your email address</strong>
    <br />
    <br />
    <div class="container">
      {{range .Digits}}<section class="block">{{.}}</section>
      {{end}}
    </div>
    <p>The code expires in {{.Minutes}} minutes.</p>
    <footer>
      If you did not create an account please ignore this email
    </footer>
  </body>
</html>
`))

	resetTmpl = template.Must(template.New("reset").Parse(`
<html>
  <head>
    <style>` + button + `      .container {
        display: flex;
        flex-direction: column;
        align-items: center;
        justify-content: center;
        margin-top: 20px;
        margin-bottom: 40px;
      }
    </style>
  </head>
  <body>
    <h1>Blog</h1>
    <p>Hi {{.Name}},</p>
    <strong>Reset your password</strong>
    <br />
    <div class="container">
      <section>
        <a id="goto" class="goto" href="{{.URL}}"> Reset password </a>
      </section>
    </div>
    <p>The link expires in {{.Minutes}} minutes.</p>
    <footer>
      If you did not request a password reset please ignore this email
    </footer>
  </body>
</html>
`))
)

// Email contains all the templates that are related to email
type Email struct{}

// VerificationTmpl returns the email with the code that is used to verify the email address
func (Email) VerificationTmpl(name, code string, minutes int) (emailHTML string, err error) {
	var buf bytes.Buffer
	err = verificationTmpl.Execute(&buf, struct {
		Name    string
		Digits  []string
		Minutes int
	}{
		Name:    name,
		Digits:  strings.Split(code, ""),
		Minutes: minutes,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// PasswordResetTmpl returns the email with the link that is used to reset the password
func (Email) PasswordResetTmpl(name, url string, minutes int) (emailHTML string, err error) {
	var buf bytes.Buffer
	err = resetTmpl.Execute(&buf, struct {
		Name    string
		URL     string
		Minutes int
	}{
		Name:    name,
		URL:     url,
		Minutes: minutes,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
