package httpapi

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// SuccessMessage is posted to the opener window once the flow completes.
const SuccessMessage = "HUBSPOT_AUTH_SUCCESS"

const successCloseAfter = 1500 * time.Millisecond

const successHead = `<!DOCTYPE html>
<html>
<head>
  <title>HubSpot Integration Success</title>
  <meta charset="UTF-8">
  <style>
    body {
      font-family: Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: linear-gradient(45deg, #f3f4f6 30%, #ffffff 90%);
      color: #16A34A;
    }
    .success-message { text-align: center; }
  </style>
</head>
<body>
  <div class="success-message">
    <h1>Success!</h1>
    <p>HubSpot integration was successful!</p>
    <p>This window will close automatically...</p>
  </div>
`

// SuccessPage renders the callback page. It posts {type: message} to
// window.opener and closes itself after closeAfter.
func SuccessPage(message string, closeAfter time.Duration) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		payload, err := templ.JSONString(map[string]string{"type": message})
		if err != nil {
			return err
		}
		if _, err := io.WriteString(w, successHead); err != nil {
			return err
		}
		_, err = io.WriteString(w, `  <script>
    if (window.opener) {
      try {
        window.opener.postMessage(`+payload+`, '*');
      } catch (e) {
        console.error('Error posting message to opener:', e);
      }
    }
    setTimeout(function() { window.close(); }, `+strconv.FormatInt(closeAfter.Milliseconds(), 10)+`);
  </script>
</body>
</html>
`)
		return err
	})
}
