// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

const pageHTML = `
<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Heart Disease Dashboard</title>
    <style>
body {
  font-family: sans-serif;
  color: #222;
  margin: 16px;
}
#controls > * {
  margin-right: 12px;
}
#views {
  display: flex;
  flex-wrap: wrap;
  gap: 12px;
  margin-top: 12px;
}
.panel {
  position: relative;
  border: 1px solid #ddd;
}
#overlay {
  position: absolute;
  left: 0;
  top: 0;
  pointer-events: none;
}
#scatter {
  cursor: crosshair;
  touch-action: none;
}
table#stats td {
  padding: 2px 12px 2px 0;
}
#error {
  color: #c0392b;
}
    </style>
  </head>
  <body>
    <h1>Heart Disease Dashboard</h1>
{{if .Error}}
    <p id="error">The dashboard could not be started: {{.Error}}</p>
    <p>Check that the data file has a header row and at least one record with every column present.</p>
{{else}}
    <div id="controls">
      <label>Selection
        <select id="mode">
          {{range .Modes}}<option value="{{.}}">{{.}}</option>{{end}}
        </select>
      </label>
      {{range .Dimensions}}
      <label>{{.Label}}
        <select class="filter" data-name="{{.Name}}">
          {{range .Choices}}<option value="{{.Value}}">{{.Label}}</option>{{end}}
        </select>
      </label>
      {{end}}
      <label>Where <input id="where" size="30" placeholder="age >= 40 && chol < 300" /></label>
      <button id="clear">Clear selection</button>
      <button id="reset">Reset</button>
      <span id="error"></span>
    </div>
    <div id="views">
      {{range .Panels}}
      <div class="panel">
        <img class="view" {{if eq . $.Scatter}}id="scatter" draggable="false"{{end}} data-name="{{.}}" src="/view/{{.}}.svg" />
        {{if eq . $.Scatter}}<svg id="overlay"></svg>{{end}}
      </div>
      {{end}}
      <div class="panel">
        <h3>Summary</h3>
        <table id="stats"></table>
      </div>
    </div>
    <script type="text/javascript">
var layout = {{.Layout}};
var state = {{.State}};
var version = "";
var queue = Promise.resolve();

function post(path, body) {
  queue = queue.then(function() {
    return fetch(path, {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify(body || {}),
    });
  }).then(function(r) {
    return r.json();
  }).then(update).catch(function(err) {
    document.getElementById("error").textContent = String(err);
  });
  return queue;
}

function update(st) {
  var errElt = document.getElementById("error");
  if (st.error) {
    errElt.textContent = st.error;
    return;
  }
  errElt.textContent = "";
  if (st.version !== version) {
    version = st.version;
    document.querySelectorAll("img.view").forEach(function(img) {
      img.src = "/view/" + img.dataset.name + ".svg?v=" + version;
    });
  }
  document.getElementById("mode").value = st.mode;
  document.querySelectorAll("select.filter").forEach(function(sel) {
    sel.value = st.filters[sel.dataset.name];
  });
  document.getElementById("where").value = st.where;
  var tbl = document.getElementById("stats");
  tbl.innerHTML = "";
  st.fields.forEach(function(f) {
    var tr = tbl.insertRow();
    tr.insertCell().textContent = f[0];
    tr.insertCell().textContent = f[1];
  });
}

var scatter = document.getElementById("scatter");
var overlay = document.getElementById("overlay");
var drag = null;
var trail = [];

function local(evt) {
  var r = scatter.getBoundingClientRect();
  return {
    x: (evt.clientX - r.left) * layout.Width / r.width,
    y: (evt.clientY - r.top) * layout.Height / r.height,
  };
}

function targetOf(p) {
  if (p.y > layout.Height - layout.Margin.Bottom) return "x";
  if (p.x < layout.Margin.Left) return "y";
  return "plot";
}

function drawTrail() {
  overlay.setAttribute("width", scatter.clientWidth);
  overlay.setAttribute("height", scatter.clientHeight);
  overlay.setAttribute("viewBox", "0 0 " + layout.Width + " " + layout.Height);
  var pts = trail.map(function(p) { return p.x + "," + p.y; }).join(" ");
  overlay.innerHTML = pts ? '<polyline fill="none" stroke="#9b59b6" stroke-width="2" stroke-dasharray="5,5" points="' + pts + '" />' : "";
}

function send(kind, evt) {
  var p = local(evt);
  if (kind === "down") drag = targetOf(p);
  if (document.getElementById("mode").value === "lasso" && drag === "plot") {
    trail.push(p);
    drawTrail();
  }
  post("/api/event", {kind: kind, target: drag, x: p.x, y: p.y});
}

scatter.addEventListener("pointerdown", function(evt) {
  evt.preventDefault();
  scatter.setPointerCapture(evt.pointerId);
  trail = [];
  send("down", evt);
});
scatter.addEventListener("pointermove", function(evt) {
  if (drag !== null) send("move", evt);
});
scatter.addEventListener("pointerup", function(evt) {
  if (drag === null) return;
  send("up", evt);
  drag = null;
  trail = [];
  drawTrail();
  // Pick up the scatter once the completed lasso has faded.
  setTimeout(function() {
    scatter.src = "/view/" + scatter.dataset.name + ".svg?refresh=1&v=" + version + "&t=" + Date.now();
  }, {{.TrailDelay}} + 50);
});

document.getElementById("mode").addEventListener("change", function(evt) {
  post("/api/mode", {mode: evt.target.value});
});
document.querySelectorAll("select.filter").forEach(function(sel) {
  sel.addEventListener("change", function() {
    post("/api/filter", {name: sel.dataset.name, value: sel.value});
  });
});
document.getElementById("where").addEventListener("change", function(evt) {
  post("/api/where", {where: evt.target.value});
});
document.getElementById("clear").addEventListener("click", function() {
  post("/api/clear");
});
document.getElementById("reset").addEventListener("click", function() {
  post("/api/reset");
});

update(state);
    </script>
{{end}}
  </body>
</html>
`
