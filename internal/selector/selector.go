// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"context"
	"errors"
	"fmt"

	"archmate-cli/internal/catalog"
	"archmate-cli/internal/install"

	"github.com/charmbracelet/log"
)

// Menu entry IDs reserved for navigation.
const (
	exitID = "\x00exit"
	backID = "\x00back"
)

type (
	// Installer is the subset of the install package the selector
	// needs. Satisfied by *install.Installer.
	Installer interface {
		Install(ctx context.Context, cat *catalog.Category, tool *catalog.Tool) (*install.Attempt, error)
	}

	// Selector runs the menu loop over a parsed catalog.
	Selector struct {
		catalog   *catalog.Catalog
		finder    Finder
		installer Installer
		logger    *log.Logger
	}
)

// New creates a selector.
func New(cat *catalog.Catalog, finder Finder, installer Installer, logger *log.Logger) *Selector {
	return &Selector{catalog: cat, finder: finder, installer: installer, logger: logger}
}

// Run drives the menu loop until the user exits. Backing out of the
// main menu, or picking its exit entry, returns nil. Install failures
// are reported and the loop continues.
func (s *Selector) Run(ctx context.Context) error {
	for {
		cat, err := s.pickCategory(ctx)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil
			}
			return err
		}
		if cat == nil {
			return nil
		}

		if err := s.runCategory(ctx, cat); err != nil {
			return err
		}
	}
}

// pickCategory shows the main menu. A nil category with nil error
// means the exit entry was chosen.
func (s *Selector) pickCategory(ctx context.Context) (*catalog.Category, error) {
	items := make([]Item, 0, s.catalog.Len()+1)
	for _, cat := range s.catalog.Categories() {
		label := cat.Name
		if cat.Icon != "" {
			label = cat.Icon + " " + cat.Name
		}
		items = append(items, Item{
			ID:      cat.ID,
			Label:   label,
			Detail:  fmt.Sprintf("%d tools", len(cat.Tools)),
			Preview: cat.Description,
		})
	}
	items = append(items, Item{ID: exitID, Label: "Exit"})

	id, err := s.finder.Pick(ctx, "category>", items)
	if err != nil {
		return nil, err
	}
	if id == exitID {
		return nil, nil
	}

	cat, ok := s.catalog.Category(id)
	if !ok {
		return nil, fmt.Errorf("finder returned unknown category %q", id)
	}
	return cat, nil
}

// runCategory loops inside one category's tool menu until the user
// backs out. The menu is re-shown after every install attempt.
func (s *Selector) runCategory(ctx context.Context, cat *catalog.Category) error {
	for {
		tool, err := s.pickTool(ctx, cat)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil
			}
			return err
		}
		if tool == nil {
			return nil
		}

		attempt, err := s.installer.Install(ctx, cat, tool)
		if err != nil {
			return err
		}
		switch attempt.Outcome {
		case install.OutcomeDeclined:
			s.logger.Debug("install declined", "tool", tool.Name)
		case install.OutcomeFailed:
			s.logger.Debug("install failed", "tool", tool.Name, "exit", attempt.ExitCode)
		}
	}
}

// pickTool shows one category's tool menu. A nil tool with nil error
// means the back entry was chosen.
func (s *Selector) pickTool(ctx context.Context, cat *catalog.Category) (*catalog.Tool, error) {
	items := make([]Item, 0, len(cat.Tools)+1)
	for i := range cat.Tools {
		tool := &cat.Tools[i]
		items = append(items, Item{
			// Tools may share a name inside a category; index keys keep
			// every row selectable.
			ID:      fmt.Sprintf("%d", i),
			Label:   tool.Name,
			Detail:  tool.Description,
			Preview: tool.Command,
		})
	}
	items = append(items, Item{ID: backID, Label: "← Back"})

	id, err := s.finder.Pick(ctx, cat.Name+">", items)
	if err != nil {
		return nil, err
	}
	if id == backID {
		return nil, nil
	}

	var idx int
	if _, err := fmt.Sscanf(id, "%d", &idx); err != nil || idx < 0 || idx >= len(cat.Tools) {
		return nil, fmt.Errorf("finder returned unknown tool %q", id)
	}
	return &cat.Tools[idx], nil
}
