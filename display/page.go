package display

// indexPage is the single page served by the web view. It renders the
// snapshots pushed over the websocket and sends speed and quit controls
// back.
const indexPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>rescue-rl</title>
<style>
body { font-family: monospace; background: #1e1e1e; color: #d4d4d4; margin: 2em; }
table { border-collapse: collapse; margin: 1em 0; }
td { border: 1px solid #555; width: 64px; height: 64px; text-align: center; font-size: 20px; }
td .value { display: block; font-size: 11px; color: #999; }
.robot { background: #2e7d32; }
.fire { background: #b71c1c; }
.critical { background: #6a1b9a; }
.stable { background: #00695c; }
.exit { background: #455a64; }
button { font-family: monospace; font-size: 14px; margin-right: 0.5em; padding: 0.3em 0.8em; }
#statuses { min-height: 3em; }
.success { color: #66bb6a; }
.failure { color: #ef5350; }
</style>
</head>
<body>
<h3>rescue-rl</h3>
<div id="meta">waiting for frames...</div>
<table id="grid"></table>
<div id="statuses"></div>
<div>
<button onclick="send('slower')">Slower</button>
<button onclick="send('faster')">Faster</button>
<button onclick="toggleDebug()">Values</button>
<button onclick="send('quit')">Quit</button>
</div>
<script>
var debug = false;
var last = null;
var ws = new WebSocket("ws://" + location.host + "/ws");

ws.onmessage = function (ev) {
    last = JSON.parse(ev.data);
    render(last);
};
ws.onclose = function () {
    document.getElementById("meta").textContent = "disconnected";
};

function send(command) {
    if (ws.readyState === WebSocket.OPEN) {
        ws.send(JSON.stringify({ command: command }));
    }
}

function toggleDebug() {
    debug = !debug;
    if (last !== null) {
        render(last);
    }
}

function key(r, c) {
    return "(" + r + ", " + c + ")";
}

function bestValue(values, r, c) {
    var row = values[key(r, c)];
    if (!row) {
        return null;
    }
    var best = null;
    for (var a in row) {
        if (best === null || row[a] > best) {
            best = row[a];
        }
    }
    return best;
}

function render(s) {
    document.getElementById("meta").textContent =
        "Level: " + s.level + "  Episode: " + s.episode + "/" + s.max_episode +
        "  Step: " + s.step + "  Eps: " + s.epsilon.toFixed(3) +
        "  Score: " + s.score + "/" + s.total_victims +
        "  Reward: " + s.reward.toFixed(1);

    var marks = {};
    var put = function (list, cls, glyph) {
        (list || []).forEach(function (p) {
            marks[key(p.row, p.col)] = { cls: cls, glyph: glyph };
        });
    };
    put([s.exit], "exit", "E");
    put(s.fire, "fire", "F");
    put(s.critical, "critical", "C");
    put(s.stable, "stable", "S");
    put([s.robot], "robot", "R");

    var grid = document.getElementById("grid");
    grid.innerHTML = "";
    for (var r = 0; r < s.size; r++) {
        var tr = document.createElement("tr");
        for (var c = 0; c < s.size; c++) {
            var td = document.createElement("td");
            var mark = marks[key(r, c)];
            if (mark) {
                td.className = mark.cls;
                td.textContent = mark.glyph;
            }
            if (debug && s.values) {
                var best = bestValue(s.values, r, c);
                if (best !== null) {
                    var span = document.createElement("span");
                    span.className = "value";
                    span.textContent = best.toFixed(1);
                    td.appendChild(span);
                }
            }
            tr.appendChild(td);
        }
        grid.appendChild(tr);
    }

    var statuses = document.getElementById("statuses");
    statuses.innerHTML = "";
    if (s.robot_status) {
        var line = document.createElement("div");
        line.textContent = s.robot_status;
        statuses.appendChild(line);
    }
    if (s.mission_status) {
        var mission = document.createElement("div");
        mission.className = s.mission_status.indexOf("Succeed") >= 0 ? "success" : "failure";
        mission.textContent = s.mission_status;
        statuses.appendChild(mission);
    }
}
</script>
</body>
</html>
`
