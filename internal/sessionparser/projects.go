package sessionparser

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/clsung/codex-log/pkg/models"
)

// projectKey buckets a session: repository URL verbatim when present (two
// spellings of the same remote are distinct keys on purpose), else the
// working directory basename, else the unknown sentinel.
func projectKey(session models.Session) string {
	if session.GitInfo != nil && session.GitInfo.RepositoryURL != "" {
		return session.GitInfo.RepositoryURL
	}
	if session.WorkingDirectory != "" {
		return filepath.Base(session.WorkingDirectory)
	}
	return models.UnknownProject
}

// GroupSessionsByProject partitions sessions by project key, preserving the
// order keys first appear, then sorts the projects by case-insensitive name.
// A session's bucket depends only on its own fields.
func GroupSessionsByProject(sessions []models.Session) []models.Project {
	groups := make(map[string][]models.Session)
	var keyOrder []string

	for _, session := range sessions {
		key := projectKey(session)
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], session)
	}

	projects := make([]models.Project, 0, len(keyOrder))
	for _, key := range keyOrder {
		projectSessions := groups[key]
		first := projectSessions[0]

		project := models.Project{
			Name:     key,
			Sessions: projectSessions,
		}
		if first.GitInfo != nil && first.GitInfo.RepositoryURL != "" {
			project.Name = first.GitInfo.ProjectName()
			project.RepositoryURL = first.GitInfo.RepositoryURL
		}
		for _, session := range projectSessions {
			if session.WorkingDirectory != "" {
				project.WorkingDirectory = session.WorkingDirectory
				break
			}
		}

		projects = append(projects, project)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})

	return projects
}
