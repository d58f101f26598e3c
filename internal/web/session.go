package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// SessionView is the viewer page shell. Every region it declares is
// filled and kept current by fragment messages over the websocket; the
// inline script only applies {selector, mode, html} updates and posts
// actions, it never interprets game state.
func SessionView(sessionID string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Crew View: `+escape(sessionID)+`</title>
    <style>
      body { font-family: system-ui, sans-serif; background: #10131c; color: #e8ecf4; margin: 0; }
      main { max-width: 1100px; margin: 0 auto; padding: 16px; }
      #statusBar { display: flex; gap: 14px; flex-wrap: wrap; padding: 8px 0; }
      .stat { background: #1a1f2e; border-radius: 6px; padding: 4px 10px; font-size: 0.9rem; }
      .stat.outcome { background: #2d4d2d; }
      .error { background: #5b1a1a; border-radius: 6px; padding: 8px 12px; margin: 8px 0; }
      #mapBoard { display: grid; grid-template-columns: repeat(4, 1fr); gap: 8px; margin: 12px 0; }
      .room { background: #1a1f2e; border: 2px solid #2a3145; border-radius: 8px; min-height: 84px; padding: 6px; }
      .room.active { border-color: #ffd43b; }
      .room-name { font-size: 0.78rem; color: #9aa4bd; }
      .tokens { display: flex; flex-wrap: wrap; gap: 4px; margin-top: 6px; }
      .token { position: relative; display: inline-flex; align-items: center; justify-content: center;
               width: 26px; height: 26px; border-radius: 50%; font-size: 0.75rem; color: #fff; }
      .token.moved { animation: hop 0.5s ease; }
      .token .you { position: absolute; top: -10px; right: -6px; font-size: 0.55rem; font-style: normal; color: #ffd43b; }
      @keyframes hop { from { transform: translateY(-8px); } to { transform: translateY(0); } }
      .columns { display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 10px; }
      .feed { background: #1a1f2e; border-radius: 8px; padding: 8px; height: 220px; overflow-y: auto; font-size: 0.82rem; }
      .feed-line { padding: 2px 0; border-bottom: 1px solid #232a3d; }
      .panel-note { color: #9aa4bd; }
      #actionPanel button.action { display: block; width: 100%; margin: 4px 0; padding: 8px;
               background: #27304a; color: #e8ecf4; border: 0; border-radius: 6px; cursor: pointer; }
      #speechBox { display: none; margin-top: 8px; }
      #speechBox textarea { width: 100%; min-height: 60px; }
    </style>
  </head>
  <body>
    <main>
      <div id="statusBar"></div>
      <div id="errorBanner"></div>
      <div id="mapBoard"></div>
      <div class="columns">
        <section>
          <h3>Actions</h3>
          <div id="actionPanel"><p class="panel-note">Waiting for your turn...</p></div>
          <div id="speechBox">
            <textarea id="speechText" placeholder="Say something..."></textarea>
            <button id="speechSend">Send</button>
          </div>
        </section>
        <section>
          <h3>Meeting</h3>
          <div id="meetingFeed" class="feed"></div>
          <h3>Tasks</h3>
          <div id="taskFeed" class="feed"></div>
        </section>
        <section>
          <h3>Log</h3>
          <div id="logFeed" class="feed"></div>
        </section>
      </div>
    </main>

    <script>
      const sessionID = `+"`"+escape(sessionID)+"`"+`;
      let pendingIndex = null;

      function applyMessage(msg) {
        const el = document.querySelector(msg.selector);
        if (!el) return;
        if (msg.mode === "append") {
          el.insertAdjacentHTML("beforeend", msg.html);
          el.scrollTop = el.scrollHeight;
        } else {
          el.innerHTML = msg.html;
        }
      }

      const proto = window.location.protocol === "https:" ? "wss" : "ws";
      const sock = new WebSocket(proto + "://" + window.location.host + "/ws/sessions/" + sessionID);
      sock.onmessage = (event) => {
        const messages = JSON.parse(event.data);
        for (const msg of messages) applyMessage(msg);
      };

      async function submitAction(index, speechText) {
        try {
          const res = await fetch("/api/sessions/" + sessionID + "/action", {
            method: "POST",
            headers: { "Content-Type": "application/json" },
            body: JSON.stringify({ action_index: index, speech_text: speechText || "" }),
          });
          if (!res.ok) {
            const data = await res.json();
            applyMessage({ selector: "#errorBanner", mode: "inner",
                           html: '<div class="error">' + (data.error || "Action failed.") + "</div>" });
          }
        } catch (err) {
          applyMessage({ selector: "#errorBanner", mode: "inner",
                         html: '<div class="error">Failed to reach the server.</div>' });
        }
      }

      document.getElementById("actionPanel").addEventListener("click", (event) => {
        const button = event.target.closest("button.action");
        if (!button) return;
        const index = parseInt(button.dataset.index, 10);
        if (button.dataset.needsMessage === "true") {
          pendingIndex = index;
          document.getElementById("speechBox").style.display = "block";
          document.getElementById("speechText").focus();
          return;
        }
        submitAction(index, "");
      });

      document.getElementById("speechSend").addEventListener("click", () => {
        if (pendingIndex === null) return;
        const text = document.getElementById("speechText").value;
        document.getElementById("speechBox").style.display = "none";
        document.getElementById("speechText").value = "";
        const index = pendingIndex;
        pendingIndex = null;
        submitAction(index, text);
      });
    </script>
  </body>
</html>`)
		return nil
	})
}
