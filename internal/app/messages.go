package app

import (
	"github.com/chmouel/lazyclones/internal/models"
	"github.com/chmouel/lazyclones/internal/status"
)

type (
	reposLoadedMsg struct {
		generation int
		entries    []models.RepoEntry
		err        error
	}
	classifiedMsg struct {
		generation int
		index      int
		path       string
		result     status.Result
		err        error
	}
	treeRenderedMsg struct {
		entry   models.RepoEntry
		content string
		err     error
	}
	loadingTickMsg   struct{}
	rootChangedMsg   struct{}
	debouncedLoadMsg struct{}
	notifyMsg        notification
)
