package hook

// Hook names used by the commit flow.
const (
	PreCommit        = "pre-commit"
	PrepareCommitMsg = "prepare-commit-msg"
	CommitMsg        = "commit-msg"
	PostCommit       = "post-commit"
)

// Known lists the hooks documented in githooks(5), in documentation order.
var Known = []string{
	"applypatch-msg",
	"pre-applypatch",
	"post-applypatch",
	PreCommit,
	"pre-merge-commit",
	PrepareCommitMsg,
	CommitMsg,
	PostCommit,
	"pre-rebase",
	"post-checkout",
	"post-merge",
	"pre-push",
	"pre-receive",
	"update",
	"proc-receive",
	"post-receive",
	"post-update",
	"reference-transaction",
	"push-to-checkout",
	"pre-auto-gc",
	"post-rewrite",
	"sendemail-validate",
	"fsmonitor-watchman",
	"p4-changelist",
	"p4-prepare-changelist",
	"p4-post-changelist",
	"p4-pre-submit",
	"post-index-change",
}
