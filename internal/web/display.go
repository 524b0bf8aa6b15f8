package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Display is the renderer: it draws each snapshot pushed over the websocket
// and sends intents back when it holds the session token.
func Display(data DisplayData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>List Blitz - `+esc(data.JoinCode)+`</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 0; background: #1b1036; color: #fff; text-align: center; }
      .shell { max-width: 720px; margin: 0 auto; padding: 1.5rem 1rem; }
      .prompt { font-size: 1.8rem; font-weight: 800; margin: 1rem 0; }
      .score { font-size: 4rem; font-weight: 900; }
      .timer { font-size: 1.5rem; }
      .controls button { margin: 0.25rem; padding: 0.8rem 1.2rem; border: 0; border-radius: 8px; font-weight: 700; }
      .ranking li { list-style: none; margin: 0.25rem 0; }
      .meta { opacity: 0.7; }
    </style>
  </head>
  <body data-session-id="`+esc(data.SessionID)+`">
    <main class="shell">
      <p class="meta">`+esc(data.Mode)+` &middot; `+esc(data.PackTitle)+` &middot; code `+esc(data.JoinCode)+`</p>
      <img alt="join code" width="128" height="128" src="/api/sessions/`+esc(data.SessionID)+`/qrcode"/>
      <h2 id="player"></h2>
      <div id="prompt" class="prompt"></div>
      <div id="score" class="score"></div>
      <div id="timer" class="timer"></div>
      <div id="phase" class="meta"></div>
      <ol id="ranking" class="ranking"></ol>
      <div class="controls">
        <button data-intent="start">Start</button>
        <button data-intent="increment">+1</button>
        <button data-intent="decrement">-1</button>
        <button data-intent="pass_turn">Pass</button>
        <button data-intent="next_player">Next player</button>
        <button data-intent="next_round">Next round</button>
        <button data-intent="next_match">Next match</button>
        <button data-intent="restart">Restart</button>
      </div>
    </main>
    <script>
      const sessionID = document.body.dataset.sessionId;
      const token = sessionStorage.getItem("listblitz.token." + sessionID) || "";
      const scheme = location.protocol === "https:" ? "wss" : "ws";
      const ws = new WebSocket(scheme + "://" + location.host + "/ws/sessions/" + sessionID + (token ? "?token=" + encodeURIComponent(token) : ""));
      const el = (id) => document.getElementById(id);

      ws.onmessage = (event) => {
        const msg = JSON.parse(event.data);
        if (msg.type === "error") {
          el("phase").textContent = msg.error;
          return;
        }
        if (msg.closed) {
          el("phase").textContent = "Game over.";
          return;
        }
        el("player").textContent = msg.current_player ? msg.current_player.name : "";
        el("prompt").textContent = msg.prompt_available ? msg.prompt : "No prompt available";
        el("score").textContent = msg.match ? "" : msg.score;
        el("timer").textContent = msg.time_remaining === null ? "" : msg.time_remaining + "s";
        el("phase").textContent = "Round " + msg.round + " - " + msg.phase;
        const ranking = el("ranking");
        ranking.innerHTML = "";
        (msg.ranking || []).forEach((p) => {
          const li = document.createElement("li");
          li.textContent = p.name + (msg.match || msg.bracket ? "" : " - " + p.score);
          ranking.appendChild(li);
        });
      };

      document.querySelectorAll("[data-intent]").forEach((button) => {
        button.disabled = !token;
        button.addEventListener("click", () => {
          ws.send(JSON.stringify({ intent: button.dataset.intent }));
        });
      });
    </script>
  </body>
</html>
`)
		return err
	})
}
