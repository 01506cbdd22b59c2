// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FuzzyFinderMissingId Id = iota + 1
	CatalogMissingId
	CatalogParseErrorId
	EmptyCatalogId
	NotArchLinuxId
	DependencyInstallFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.extLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	fuzzyFinderMissingIssue = &Issue{
		id: FuzzyFinderMissingId,
		mdMsg: `
# Fuzzy finder not available!

archmate renders every menu through ` + "`fzf`" + ` and cannot run without it.
An automatic install was attempted but the binary is still missing.

## Things you can try:
- Install it manually:
~~~
$ sudo pacman -S fzf
~~~

- Make sure /usr/bin is on your PATH
- Re-run the dependency report:
~~~
$ archmate doctor
~~~`,
		extLinks: []HttpLink{"https://github.com/junegunn/fzf"},
	}

	catalogMissingIssue = &Issue{
		id: CatalogMissingId,
		mdMsg: `
# No catalog available!

We could not find a tool catalog to build the menu from.

## Search order:
1. The path given via --catalog or catalog.path in the config file
2. The local cache of the remote catalog
3. A fresh download from catalog.url

## Things you can try:
- Check your network connection and retry:
~~~
$ archmate catalog update
~~~

- Point archmate at a local catalog file:
~~~
$ archmate --catalog ./my-tools.yaml
~~~

- Inspect the configured source:
~~~
$ archmate config show
~~~`,
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse the catalog!

The catalog file contains a malformed entry. Parsing is all-or-nothing:
one bad record invalidates the whole load so you never get a partial menu.

## Line format:
~~~
category:tool name:description:install command
~~~
The command field may contain further colons; the first three separators win.

## YAML format:
~~~yaml
categories:
  system:
    name: "System Maintenance"
    order: 1
    tools:
      - name: "System Update"
        description: "Full system update"
        command: "sudo pacman -Syu --noconfirm"
~~~

## Things you can try:
- Check the reported line/field in the error above
- Force a refetch in case the cache is truncated:
~~~
$ archmate catalog update
~~~`,
	}

	emptyCatalogIssue = &Issue{
		id: EmptyCatalogId,
		mdMsg: `
# The catalog is empty!

The catalog parsed cleanly but defines no categories, so there is
nothing to show in the menu.

## Things you can try:
- Verify the configured source actually contains categories:
~~~
$ archmate catalog show
~~~

- Refetch the remote catalog:
~~~
$ archmate catalog update
~~~`,
	}

	notArchLinuxIssue = &Issue{
		id: NotArchLinuxId,
		mdMsg: `
# This does not look like an Arch-based system!

archmate installs software through pacman, and pacman was not found.
Supported distributions include Arch, Manjaro, EndeavourOS and Artix.

## Things you can try:
- Run archmate on an Arch-based distribution
- If this IS an Arch system, check that /usr/bin/pacman exists and
  is on your PATH`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Failed to install a required dependency!

A helper binary was missing, the automatic pacman install ran, and the
binary still cannot be found.

## Things you can try:
- Install it manually with pacman and check the output for errors
- Make sure sudo is configured for your user
- Re-run the dependency report:
~~~
$ archmate doctor
~~~

## Note on AUR helpers:
yay and paru live in the AUR itself and must be built manually:
~~~
$ git clone https://aur.archlinux.org/yay.git
$ cd yay && makepkg -si
~~~`,
	}

	issues = map[Id]*Issue{
		fuzzyFinderMissingIssue.Id():      fuzzyFinderMissingIssue,
		catalogMissingIssue.Id():          catalogMissingIssue,
		catalogParseErrorIssue.Id():       catalogParseErrorIssue,
		emptyCatalogIssue.Id():            emptyCatalogIssue,
		notArchLinuxIssue.Id():            notArchLinuxIssue,
		dependencyInstallFailedIssue.Id(): dependencyInstallFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
