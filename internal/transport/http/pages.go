package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var landingPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>MovieShelf</title>
<style>
body { font-family: Arial, sans-serif; margin: 0; background: #141414; color: #fff; min-height: 100vh; }
header { padding: 48px 20px 24px; text-align: center; }
input { padding: 10px; width: 60%; max-width: 420px; border-radius: 4px; border: none; }
button { margin: 6px; padding: 10px 18px; border: none; border-radius: 4px; cursor: pointer; background: #e50914; color: #fff; }
ol { max-width: 520px; margin: 0 auto; padding: 0 20px; }
li { padding: 6px 0; border-bottom: 1px solid #333; }
#results li { cursor: pointer; }
#notice { text-align: center; min-height: 1.5em; color: #ffd166; }
</style>
</head>
<body>
<header>
  <h1>MovieShelf</h1>
  <p>Your Top 10, ranked.</p>
  <input id="query" placeholder="Search movies" oninput="suggest()" />
</header>
<p id="notice"></p>
<ol id="results"></ol>
<h2 style="text-align:center">My Top 10</h2>
<ol id="favorites"></ol>
<script>
let token = localStorage.getItem('movieshelfToken');

async function ensureProfile() {
  if (token) return;
  const res = await fetch('/api/v1/profiles', { method: 'POST' });
  const body = await res.json();
  token = body.token;
  localStorage.setItem('movieshelfToken', token);
}

function authed(path, options = {}) {
  options.headers = Object.assign({ 'Authorization': 'Bearer ' + token, 'Content-Type': 'application/json' }, options.headers || {});
  return fetch(path, options);
}

async function suggest() {
  const q = document.getElementById('query').value;
  const res = await fetch('/api/v1/movies/search?limit=7&query=' + encodeURIComponent(q));
  const body = await res.json();
  const list = document.getElementById('results');
  list.innerHTML = '';
  (body.results || []).forEach(m => {
    const li = document.createElement('li');
    li.textContent = m.title + (m.year ? ' (' + m.year + ')' : '');
    li.onclick = () => add(m);
    list.appendChild(li);
  });
}

async function add(movie) {
  const res = await authed('/api/v1/users/me/favorites', {
    method: 'POST',
    body: JSON.stringify({ id: movie.id, title: movie.title, release_date: movie.release_date, poster_path: movie.poster_path })
  });
  const body = await res.json();
  document.getElementById('notice').textContent = body.message || body.error || '';
  render();
}

async function removeRank(rank) {
  await authed('/api/v1/users/me/favorites/' + rank, { method: 'DELETE' });
  render();
}

async function render() {
  const res = await authed('/api/v1/users/me/favorites');
  const body = await res.json();
  const list = document.getElementById('favorites');
  list.innerHTML = '';
  (body.slots || []).forEach(slot => {
    const li = document.createElement('li');
    if (slot.favorite) {
      li.textContent = slot.favorite.title + ' ';
      const btn = document.createElement('button');
      btn.textContent = 'Remove';
      btn.onclick = () => removeRank(slot.rank);
      li.appendChild(btn);
    } else {
      li.textContent = 'Add a movie';
      li.style.opacity = 0.5;
    }
    list.appendChild(li);
  });
}

ensureProfile().then(render);
</script>
</body>
</html>`

func RegisterPages(e *echo.Echo) {
	e.GET("/", func(c echo.Context) error {
		return c.HTML(http.StatusOK, landingPageHTML)
	})
}
