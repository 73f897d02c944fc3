package detect

import (
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/errors"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/filesystem"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/logging"
	"github.com/Flame0510/Stardew-Valley-Cross-Save-Tool/pkg/types"
)

// SaveGameInfoFile is the metadata file the game writes into each save
// game directory.
const SaveGameInfoFile = "SaveGameInfo"

// SaveGame is one save game inside the saves directory.
type SaveGame struct {
	// Name is the save directory name, e.g. "Farmer_123456789"
	Name string

	// FarmerName is the farmer name parsed from SaveGameInfo, empty if
	// it could not be read
	FarmerName string

	// Path is the save game directory
	Path string
}

// ListSaveGames enumerates the save games under savesDir: every child
// directory holding a SaveGameInfo file. The farmer name is read from
// the file's XML; a save whose metadata cannot be parsed is still
// listed, just without a name.
func ListSaveGames(fsys types.FS, savesDir string) ([]SaveGame, error) {
	logger := logging.GetLogger("detect.savegames")

	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	entries, err := fsys.ReadDir(savesDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDetect, "failed to read saves directory %s", savesDir)
	}

	var saves []SaveGame
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(savesDir, entry.Name())
		infoPath := filepath.Join(dir, SaveGameInfoFile)

		data, err := fsys.ReadFile(infoPath)
		if err != nil {
			continue
		}

		save := SaveGame{Name: entry.Name(), Path: dir}
		save.FarmerName = farmerName(data)
		if save.FarmerName == "" {
			logger.Debug().Str("save", dir).Msg("Could not parse farmer name from SaveGameInfo")
		}
		saves = append(saves, save)
	}
	return saves, nil
}

// farmerName extracts the farmer name from SaveGameInfo XML. The root
// element is Farmer with a name child.
func farmerName(data []byte) string {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return ""
	}
	if el := doc.FindElement("Farmer/name"); el != nil {
		return el.Text()
	}
	if el := doc.FindElement("//name"); el != nil {
		return el.Text()
	}
	return ""
}
