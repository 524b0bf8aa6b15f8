package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Home(data HomeData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var packs strings.Builder
		for _, pack := range data.Packs {
			label := esc(pack.Title) + " (" + itoa(pack.PromptCount) + ")"
			if pack.Locked {
				packs.WriteString(`<option value="` + esc(pack.Key) + `" disabled>` + label + ` - locked</option>`)
				continue
			}
			packs.WriteString(`<option value="` + esc(pack.Key) + `">` + label + `</option>`)
		}
		var active strings.Builder
		if len(data.Active) == 0 {
			active.WriteString(`<li class="empty">No sessions running.</li>`)
		}
		for _, session := range data.Active {
			active.WriteString(`<li><a href="/display/` + esc(session.JoinCode) + `">` + esc(session.JoinCode) + `</a> ` +
				esc(session.Mode) + ` &middot; ` + itoa(session.Players) + ` players &middot; ` + esc(session.Phase) +
				` &middot; ` + itoa(session.Screens) + ` screens</li>`)
		}
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>List Blitz</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 0; background: #1b1036; color: #fff; }
      .shell { max-width: 640px; margin: 0 auto; padding: 2rem 1rem; }
      .panel { background: rgba(255,255,255,0.08); border-radius: 12px; padding: 1rem; margin-bottom: 1rem; }
      label { display: block; margin: 0.5rem 0; }
      button { padding: 0.6rem 1.2rem; border: 0; border-radius: 8px; background: #ffd43b; font-weight: 700; }
      .result { margin-top: 0.75rem; min-height: 1.2em; }
      a { color: #ffd43b; }
    </style>
  </head>
  <body>
    <main class="shell">
      <header>
        <h1>List Blitz</h1>
        <p>Name as many things in the category as you can before your turn runs out.</p>
      </header>

      <section class="panel">
        <h2>New game</h2>
        <form id="createForm">
          <label>Mode
            <select name="mode">
              <option value="chill">Chill</option>
              <option value="blitz">Blitz</option>
              <option value="battle">Battle</option>
            </select>
          </label>
          <label>Players
            <input name="player_count" type="number" min="1" max="`+itoa(data.MaxPlayers)+`" value="2"/>
          </label>
          <label>Pack
            <select name="pack_id">`+packs.String()+`</select>
          </label>
          <button type="submit">Start</button>
        </form>
        <div id="createResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>Running now</h2>
        <ul>`+active.String()+`</ul>
        <p><a href="/history">Past games</a></p>
      </section>
    </main>

    <script>
      const form = document.getElementById("createForm");
      const result = document.getElementById("createResult");
      form.addEventListener("submit", async (event) => {
        event.preventDefault();
        result.textContent = "Setting up...";
        const res = await fetch("/api/sessions", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            mode: form.elements.mode.value,
            player_count: parseInt(form.elements.player_count.value, 10) || 0,
            pack_id: form.elements.pack_id.value,
            customer_id: localStorage.getItem("listblitz.customer") || ""
          })
        });
        const data = await res.json();
        if (!res.ok) {
          result.textContent = data.error || "Could not start the game.";
          return;
        }
        sessionStorage.setItem("listblitz.token." + data.session_id, data.token);
        window.location.href = "/display/" + data.join_code;
      });
    </script>
  </body>
</html>
`)
		return err
	})
}
