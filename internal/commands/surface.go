package commands

import (
	"github.com/AreteDriver/Gorgon/internal/buildinfo"
	"github.com/AreteDriver/Gorgon/internal/files"
	"github.com/AreteDriver/Gorgon/internal/git"
	"github.com/AreteDriver/Gorgon/internal/git/client"
	"github.com/AreteDriver/Gorgon/internal/notify"
	"github.com/AreteDriver/Gorgon/internal/ui"
	"github.com/AreteDriver/Gorgon/internal/workspaces"
)

// Surface is the set of bound APIs the registry dispatches to. A nil field
// leaves that group of commands unregistered.
type Surface struct {
	Files      *files.API
	Git        *git.API
	Notify     *notify.API
	UI         *ui.API
	Workspaces *workspaces.API
}

type pathArgs struct {
	Path string `json:"path"`
}

type writeArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type repoArgs struct {
	RepoPath string `json:"repoPath"`
}

type diffArgs struct {
	RepoPath string `json:"repoPath"`
	Staged   bool   `json:"staged"`
}

type commitArgs struct {
	RepoPath string `json:"repoPath"`
	Message  string `json:"message"`
}

type branchArgs struct {
	RepoPath   string `json:"repoPath"`
	BranchName string `json:"branchName"`
}

type remoteArgs struct {
	RepoPath string  `json:"repoPath"`
	Remote   *string `json:"remote"`
	Branch   *string `json:"branch"`
}

type logArgs struct {
	RepoPath string `json:"repoPath"`
	Count    *int   `json:"count"`
}

type notificationArgs struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type idArgs struct {
	ID int64 `json:"id"`
}

type none struct{}

// New registers every command the surface provides.
func New(s Surface) *Registry {
	r := NewRegistry()
	if a := s.Files; a != nil {
		r.Register("read_file", bind(func(p pathArgs) (string, error) { return a.ReadFile(p.Path) }, "path"))
		r.Register("write_file", bindVoid(func(p writeArgs) error { return a.WriteFile(p.Path, p.Content) }, "path", "content"))
		r.Register("list_directory", bind(func(p pathArgs) ([]files.DirectoryEntry, error) { return a.ListDirectory(p.Path) }, "path"))
		r.Register("file_exists", bind(func(p pathArgs) (bool, error) { return a.FileExists(p.Path) }, "path"))
		r.Register("create_directory", bindVoid(func(p pathArgs) error { return a.CreateDirectory(p.Path) }, "path"))
		r.Register("delete_file", bindVoid(func(p pathArgs) error { return a.DeleteFile(p.Path) }, "path"))
	}
	if a := s.Git; a != nil {
		r.Register("git_status", bind(func(p repoArgs) ([]client.StatusEntry, error) { return a.GitStatus(p.RepoPath) }, "repoPath"))
		r.Register("git_diff", bind(func(p diffArgs) (string, error) { return a.GitDiff(p.RepoPath, p.Staged) }, "repoPath", "staged"))
		r.Register("git_commit", bind(func(p commitArgs) (string, error) { return a.GitCommit(p.RepoPath, p.Message) }, "repoPath", "message"))
		r.Register("git_branch", bind(func(p repoArgs) ([]client.BranchInfo, error) { return a.GitBranch(p.RepoPath) }, "repoPath"))
		r.Register("git_checkout", bindVoid(func(p branchArgs) error { return a.GitCheckout(p.RepoPath, p.BranchName) }, "repoPath", "branchName"))
		r.Register("git_push", bindVoid(func(p remoteArgs) error { return a.GitPush(p.RepoPath, p.Remote, p.Branch) }, "repoPath"))
		r.Register("git_pull", bindVoid(func(p remoteArgs) error { return a.GitPull(p.RepoPath, p.Remote, p.Branch) }, "repoPath"))
		r.Register("git_log", bind(func(p logArgs) ([]client.LogEntry, error) { return a.GitLog(p.RepoPath, p.Count) }, "repoPath"))
		r.Register("git_create_branch", bindVoid(func(p branchArgs) error { return a.GitCreateBranch(p.RepoPath, p.BranchName) }, "repoPath", "branchName"))
	}
	if a := s.Notify; a != nil {
		r.Register("send_notification", bindVoid(func(p notificationArgs) error { return a.SendNotification(p.Title, p.Body) }, "title", "body"))
	}
	if a := s.UI; a != nil {
		r.Register("get_app_info", bind(func(none) (buildinfo.AppInfo, error) { return a.GetAppInfo() }))
	}
	if a := s.Workspaces; a != nil {
		r.Register("list_workspaces", bind(func(none) ([]workspaces.WorkspaceDTO, error) { return a.ListWorkspaces() }))
		r.Register("register_workspace", bind(a.RegisterWorkspace, "path"))
		r.Register("delete_workspace", bindVoid(func(p idArgs) error { return a.DeleteWorkspace(p.ID) }, "id"))
		r.Register("mark_workspace_opened", bindVoid(func(p idArgs) error { return a.MarkWorkspaceOpened(p.ID) }, "id"))
	}
	return r
}
