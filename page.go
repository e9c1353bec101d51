package main

// statusPageHTML is the whole frontend: it opens a websocket with the page's
// query string forwarded and renders whatever state frames come back.
const statusPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>sheSafe &mdash; Live Status</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
	font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
	background: #0f1419;
	color: #e0e0e0;
	min-height: 100vh;
	padding: 20px;
}
.container { max-width: 640px; margin: 0 auto; }
header {
	display: flex;
	justify-content: space-between;
	align-items: center;
	margin-bottom: 24px;
	padding-bottom: 16px;
	border-bottom: 1px solid #333;
}
h1 { font-size: 24px; font-weight: 600; }
.card {
	background: #1a1f26;
	border: 1px solid #333;
	border-radius: 8px;
	padding: 20px;
	margin-bottom: 16px;
}
.label { font-size: 12px; color: #888; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 6px; }
.value { font-size: 22px; font-weight: 600; }
.muted { color: #888; font-size: 14px; margin-top: 6px; }
.badge {
	display: inline-block;
	padding: 4px 12px;
	border-radius: 12px;
	font-size: 13px;
	background: #1a4d2e;
	color: #4ade80;
}
.badge.safe { background: #1e3a5f; color: #60a5fa; }
.banner {
	background: #3b1d1d;
	border: 1px solid #7f1d1d;
	color: #fca5a5;
	border-radius: 8px;
	padding: 12px 16px;
	margin-bottom: 16px;
	font-size: 14px;
}
.controls { display: flex; gap: 10px; margin-top: 8px; }
button {
	background: #233041;
	color: #e0e0e0;
	border: 1px solid #3b4a5f;
	border-radius: 6px;
	padding: 10px 18px;
	font-size: 14px;
	cursor: pointer;
}
button:hover { background: #2d3e54; }
button.danger { border-color: #7f1d1d; color: #fca5a5; }
a { color: #60a5fa; }
audio { width: 100%; margin-top: 10px; }
.hidden { display: none; }
</style>
</head>
<body>
<div class="container">
	<header>
		<h1>sheSafe Live Status</h1>
		<span id="device-badge" class="muted"></span>
	</header>

	<div id="banner" class="banner hidden"></div>

	<div id="view-missing" class="card hidden">
		<div class="value" id="missing-text">No token or device provided.</div>
		<div class="muted">Open this page from a share link, or add ?token=&hellip; or ?device=&hellip; to the URL.</div>
	</div>

	<div id="view-resolving" class="card hidden">
		<div class="value">Resolving share link&hellip;</div>
	</div>

	<div id="view-error" class="card hidden">
		<div class="label">Something went wrong</div>
		<div class="value" id="error-text"></div>
	</div>

	<div id="view-live" class="hidden">
		<div class="card">
			<div class="label">Location</div>
			<div class="value" id="coords">&mdash;</div>
			<div class="muted" id="last-seen"></div>
			<div class="muted" id="map-link"></div>
		</div>
		<div class="card">
			<div class="label">Status</div>
			<span class="badge" id="status-badge">active</span>
		</div>
		<div class="card hidden" id="audio-card">
			<div class="label">Latest recording</div>
			<audio id="audio" controls></audio>
			<div class="muted" id="audio-ts"></div>
		</div>
		<div class="controls">
			<button id="refresh">Refresh</button>
			<button id="mark-safe">Mark safe</button>
			<button id="stop" class="danger">Stop</button>
		</div>
	</div>
</div>

<script>
(function () {
	var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
	var ws = new WebSocket(proto + location.host + '/ws' + location.search);
	var stopped = false;

	var views = ['missing', 'resolving', 'error', 'live'];
	function show(name) {
		views.forEach(function (v) {
			document.getElementById('view-' + v).classList.toggle('hidden', v !== name);
		});
	}

	function send(cmd) {
		if (ws.readyState === WebSocket.OPEN) {
			ws.send(JSON.stringify({ cmd: cmd }));
		}
	}
	document.getElementById('refresh').onclick = function () { send('refresh'); };
	document.getElementById('mark-safe').onclick = function () { send('mark-safe'); };
	document.getElementById('stop').onclick = function () { stopped = true; send('stop'); };

	function render(st) {
		var banner = document.getElementById('banner');
		document.getElementById('device-badge').textContent = st.device || '';

		if (st.status === 'missing') {
			banner.classList.add('hidden');
			if (stopped) {
				// drop token/device from the address bar without a reload
				history.replaceState(null, '', location.pathname);
				document.getElementById('missing-text').textContent = 'Tracking stopped.';
			}
			show('missing');
			return;
		}
		if (st.status === 'idle' || st.status === 'resolving') {
			banner.classList.add('hidden');
			show('resolving');
			return;
		}
		if (st.status === 'error' && !st.device) {
			banner.classList.add('hidden');
			document.getElementById('error-text').textContent = st.error ? st.error.message : 'unknown error';
			show('error');
			return;
		}

		// live view, with a non-fatal banner when the last poll failed
		if (st.error) {
			banner.textContent = st.error.message;
			banner.classList.remove('hidden');
		} else {
			banner.classList.add('hidden');
		}

		var latest = st.latest;
		if (latest && latest.lat != null && latest.lon != null) {
			document.getElementById('coords').textContent = latest.lat + ', ' + latest.lon;
			var osm = 'https://www.openstreetmap.org/?mlat=' + latest.lat + '&mlon=' + latest.lon + '#map=16/' + latest.lat + '/' + latest.lon;
			document.getElementById('map-link').innerHTML = '<a href="' + osm + '" target="_blank" rel="noopener">Open map</a>';
		} else {
			document.getElementById('coords').textContent = 'waiting for a fix…';
			document.getElementById('map-link').textContent = '';
		}
		document.getElementById('last-seen').textContent = latest && latest.timestamp ? 'Last seen: ' + latest.timestamp : '';

		var badge = document.getElementById('status-badge');
		badge.textContent = (latest && latest.status) || 'active';
		badge.classList.toggle('safe', !!(latest && latest.status === 'safe'));

		var audioCard = document.getElementById('audio-card');
		if (st.audio) {
			var audio = document.getElementById('audio');
			if (audio.getAttribute('src') !== st.audio) {
				audio.setAttribute('src', st.audio);
			}
			document.getElementById('audio-ts').textContent = latest && latest.audio_ts ? 'Recorded: ' + latest.audio_ts : '';
			audioCard.classList.remove('hidden');
		} else {
			audioCard.classList.add('hidden');
		}
		show('live');
	}

	ws.onmessage = function (ev) {
		render(JSON.parse(ev.data));
	};
	ws.onclose = function () {
		var banner = document.getElementById('banner');
		banner.textContent = 'Connection lost. Reload the page to reconnect.';
		banner.classList.remove('hidden');
	};
})();
</script>
</body>
</html>
`
