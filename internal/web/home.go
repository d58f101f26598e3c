package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Home(sessions []SessionSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Crew View</title>
    <style>
      body { font-family: system-ui, sans-serif; background: #10131c; color: #e8ecf4; margin: 0; }
      main { max-width: 640px; margin: 0 auto; padding: 32px 16px; }
      h1 { font-size: 1.6rem; }
      .panel { background: #1a1f2e; border-radius: 10px; padding: 20px; margin-bottom: 16px; }
      button.primary { background: #c51111; color: #fff; border: 0; border-radius: 6px; padding: 10px 18px; cursor: pointer; }
      ul.sessions { list-style: none; padding: 0; }
      ul.sessions li { padding: 8px 0; border-bottom: 1px solid #2a3145; }
      a { color: #7fb2ff; }
      .result { margin-top: 10px; min-height: 1.2em; color: #ffb3b3; }
    </style>
  </head>
  <body>
    <main>
      <h1>Crew View</h1>
      <section class="panel">
        <p>Start a new game against the LLM crew and watch it live.</p>
        <button id="createSession" class="primary">New game</button>
        <div id="createResult" class="result"></div>
      </section>
      <section class="panel">
        <h2>Active sessions</h2>
        <ul class="sessions">`)
		for _, session := range sessions {
			_, _ = io.WriteString(w, `<li><a href="/sessions/`+escape(session.ID)+`">`+escape(session.ID)+
				`</a> (game `+itoa(session.GameID)+`, `+escape(session.Status)+`, T`+itoa(session.Timestep)+`)</li>`)
		}
		if len(sessions) == 0 {
			_, _ = io.WriteString(w, `<li>No sessions yet.</li>`)
		}
		_, _ = io.WriteString(w, `</ul>
      </section>
    </main>

    <script>
      const createBtn = document.getElementById("createSession");
      const createResult = document.getElementById("createResult");

      createBtn.addEventListener("click", async () => {
        createResult.textContent = "Creating game...";
        try {
          const res = await fetch("/api/sessions", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: "{}",
          });
          const data = await res.json();
          if (!res.ok) {
            createResult.textContent = data.error || "Failed to create game.";
            return;
          }
          window.location.href = "/sessions/" + data.session_id;
        } catch (err) {
          createResult.textContent = "Failed to reach the server.";
        }
      });
    </script>
  </body>
</html>`)
		return nil
	})
}
