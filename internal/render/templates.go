package render

const baseStyle = `
    :root {
      --surface: #ffffff;
      --border: rgba(15,23,42,0.12);
      --text: #0f172a;
      --muted: rgba(15,23,42,0.6);
      --accent: #2563eb;
      --chip-bg: rgba(37,99,235,0.08);
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 2rem;
      font-family: "Segoe UI", system-ui, -apple-system, sans-serif;
      color: var(--text);
      background: #f8fafc;
    }
    h1 { margin-top: 0; }
    h2 { margin: 0; }
    .summary { color: var(--muted); margin-bottom: 2rem; }
    .session, .project {
      background: var(--surface);
      border: 1px solid var(--border);
      border-radius: 10px;
      padding: 1.2rem 1.4rem;
      margin-bottom: 1.4rem;
    }
    .session-header, .project-header {
      display: flex;
      justify-content: space-between;
      align-items: baseline;
      flex-wrap: wrap;
      gap: 0.5rem;
    }
    .session-id {
      font-family: ui-monospace, monospace;
      font-size: 0.85rem;
      color: var(--muted);
    }
    .timespan { font-size: 0.85rem; color: var(--muted); }
    .chip {
      display: inline-block;
      background: var(--chip-bg);
      color: var(--accent);
      border-radius: 999px;
      padding: 0.1rem 0.7rem;
      font-size: 0.8rem;
      margin-right: 0.4rem;
    }
    .entry {
      border-top: 1px solid var(--border);
      padding: 0.7rem 0;
    }
    .entry time { font-size: 0.8rem; color: var(--muted); display: block; }
    .entry pre {
      margin: 0.3rem 0 0;
      white-space: pre-wrap;
      word-break: break-word;
      font-family: ui-monospace, monospace;
      font-size: 0.9rem;
    }
    .instructions {
      font-size: 0.85rem;
      color: var(--muted);
      border-left: 3px solid var(--accent);
      padding-left: 0.8rem;
      margin: 0.8rem 0;
      white-space: pre-wrap;
    }
    .repo a { color: var(--accent); text-decoration: none; }
`

// sessionTemplate renders one session card; shared by both reports.
const sessionTemplate = `<section class="session">
  <div class="session-header">
    <span class="session-id">{{.SessionID}}</span>
    <span class="timespan">{{formatTime .StartTime}} &ndash; {{formatTime .EndTime}}</span>
  </div>
  {{if .WorkingDirectory}}<span class="chip">{{.WorkingDirectory}}</span>{{end}}
  {{if .GitInfo}}{{if .GitInfo.Branch}}<span class="chip">{{.GitInfo.Branch}}</span>{{end}}{{end}}
  {{if .Instructions}}<div class="instructions">{{.Instructions}}</div>{{end}}
  {{range .Entries}}<div class="entry">
    <time>{{formatTime .Time}}</time>
    <pre>{{.Text}}</pre>
  </div>
  {{end}}
</section>
`

const conversationTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Codex Conversation Log</title>
  <style>` + baseStyle + `</style>
</head>
<body>
  <h1>Codex Conversation Log</h1>
  <p class="summary">{{len .Sessions}} sessions &middot; {{.TotalEntries}} entries</p>
  {{range .Sessions}}{{template "session" .}}{{end}}
</body>
</html>
`

const projectsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>Codex Projects</title>
  <style>` + baseStyle + `</style>
</head>
<body>
  <h1>Codex Projects</h1>
  <p class="summary">{{len .Projects}} projects &middot; {{len .Sessions}} sessions &middot; {{.TotalEntries}} entries</p>
  {{range .Projects}}<section class="project">
    <div class="project-header">
      <h2>{{.Name}}</h2>
      <span class="timespan">{{formatDate .StartTime}} &ndash; {{formatDate .EndTime}}</span>
    </div>
    {{if .RepositoryURL}}<p class="repo"><a href="{{.RepositoryURL}}">{{.RepositoryURL}}</a></p>{{end}}
    {{if .WorkingDirectory}}<span class="chip">{{.WorkingDirectory}}</span>{{end}}
    <span class="chip">{{len .Sessions}} sessions</span>
    <span class="chip">{{.TotalEntries}} entries</span>
    {{range .Sessions}}{{template "session" .}}{{end}}
  </section>
  {{end}}
</body>
</html>
`
