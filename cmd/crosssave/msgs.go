package crosssave

// Message constants
const (
	MsgRootShort = "Share game saves across machines via a cloud-synced folder"
	MsgRootLong  = `crosssave relocates the game's save folder into a cloud-synced
location and replaces the original with a symlink (or junction on
Windows), so every machine sharing the cloud folder sees the same
saves. The cloud folder is any local path that third-party software
keeps in sync; crosssave never talks to the network itself.`

	MsgMigrateShort = "Copy the saves into the cloud folder"
	MsgMigrateLong  = `Migrate copies every entry of the save directory into
<cloud-root>/Saves. The original save directory is left untouched; no
destructive step exists. Safe to run any number of times.`

	MsgLinkShort = "Move the saves to the cloud folder and link back"
	MsgLinkLong  = `Link copies the saves to <cloud-root>/Saves, creates a timestamped
backup under the backup root, and only then replaces the original save
directory with a link to the cloud copy. The saves exist in two other
places before the original is ever removed; if any step fails, nothing
that completed is rolled back and the data stays recoverable.`

	MsgRestoreShort = "Restore the saves from a backup"
	MsgRestoreLong  = `Restore removes whatever currently occupies the save directory (link
or real directory) and copies a backup's contents back, turning the
save directory into a real directory again. Without --backup the most
recent backup of this save directory is used.`

	MsgStatusShort = "Show whether the saves are linked, and list backups"
	MsgStatusLong  = `Status reports whether the save directory is a real directory or a
link (and where the link points), plus the backups recorded under the
backup root. Read-only.`

	MsgDetectShort = "Locate the game's saves and installation on this machine"
	MsgDetectLong  = `Detect probes the locations the game uses on each platform, prints
the first saves directory and installation found, and lists the save
games inside (with farmer names parsed from SaveGameInfo).`

	MsgWatchShort = "Auto-copy the saves to the cloud folder on change"
	MsgWatchLong  = `Watch monitors the save directory and re-runs migrate after each
burst of changes settles. Useful when the saves are not linked and you
still want the cloud copy to follow along. Runs until interrupted.`
)
