package repo

// StashCount returns the number of entries in the stash reflog. A missing
// log means no stashes.
func (r *Repo) StashCount() int {
	return r.countLines(r.commonPath("logs", "refs", "stash"), isReflogLine)
}

func isReflogLine(line string) bool {
	return line != ""
}
