package pathmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileProps(t *testing.T) {
	fp := NewFileProps("/root", "/root/sub/a.JPG", 200)

	assert.Equal(t, "/root/sub/a.JPG", fp.FullPath)
	assert.Equal(t, "sub/a.JPG", fp.RelativePath)
	assert.Equal(t, "/root/sub", fp.FolderFullPath)
	assert.Equal(t, "a", fp.Stem)
	assert.Equal(t, "jpg", fp.Extension)
	assert.Equal(t, "a.JPG", fp.Name)
}

func TestNewFolderProps_Root(t *testing.T) {
	folder := NewFolderProps("/root", "/root")
	require.True(t, folder.IsRoot())
	assert.Equal(t, folder.FullPath, folder.ParentFullPath)
}

func TestNewFolderProps_NonRoot(t *testing.T) {
	folder := NewFolderProps("/root", "/root/sub")
	assert.False(t, folder.IsRoot())
	assert.Equal(t, "/root", folder.ParentFullPath)
	assert.Equal(t, "sub", folder.Name)
}

func TestReplaceTokens_File(t *testing.T) {
	fp := NewFileProps("/root", "/root/sub/a.jpg", 1)
	tmpl := "convert <input-file-full-path> -resize 400x400 <folder-path>/out.<file-extension>"
	got := ReplaceTokens(tmpl, fp)
	assert.Equal(t, "convert /root/sub/a.jpg -resize 400x400 /root/sub/out.jpg", got)
}

func TestReplaceTokens_UnknownTokenLeftIntact(t *testing.T) {
	fp := NewFileProps("/root", "/root/a.jpg", 1)
	got := ReplaceTokens("<file-stem> <unknown-token>", fp)
	assert.Equal(t, "a <unknown-token>", got)
}

func TestReplaceTokens_Folder(t *testing.T) {
	folder := NewFolderProps("/root", "/root/sub")
	got := ReplaceTokens("mkdir -p <input-folder-full-path>", folder)
	assert.Equal(t, "mkdir -p /root/sub", got)
}

func TestExtensionList_BothEmpty_AcceptsAll(t *testing.T) {
	var l ExtensionList
	assert.True(t, l.Accepts("jpg"))
	assert.True(t, l.Accepts("anything"))
}

func TestExtensionList_ExcludeOnly(t *testing.T) {
	l := ExtensionList{Exclude: []string{"TXT", "ini"}}
	assert.False(t, l.Accepts("txt"))
	assert.False(t, l.Accepts(".INI"))
	assert.True(t, l.Accepts("jpg"))
}

func TestExtensionList_TargetOnly(t *testing.T) {
	l := ExtensionList{Target: []string{"jpg", "MP4"}}
	assert.True(t, l.Accepts("JPG"))
	assert.True(t, l.Accepts("mp4"))
	assert.False(t, l.Accepts("png"))
}

func TestExtensionList_ExcludeWinsOverTarget(t *testing.T) {
	l := ExtensionList{Target: []string{"jpg"}, Exclude: []string{"jpg"}}
	assert.False(t, l.Accepts("jpg"))
}
