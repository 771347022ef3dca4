package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/register-graph/internal/domain/entities"
	"github.com/ersonp/register-graph/internal/infrastructure/logger"
	"github.com/ersonp/register-graph/internal/infrastructure/registries"
)

// promptCallback implements ports.UnresolvedCallback over stdin. The
// operator may answer with a name and type, optionally pasting a registry
// link to pin the entity to a registry record. An empty name skips the
// record.
type promptCallback struct {
	in  *bufio.Scanner
	out io.Writer
	log *logger.Logger
}

func newPromptCallback(in io.Reader, out io.Writer, log *logger.Logger) *promptCallback {
	return &promptCallback{
		in:  bufio.NewScanner(in),
		out: out,
		log: log,
	}
}

func (p *promptCallback) ResolveManually(ctx context.Context, rel *entities.Relationship) (*entities.Entity, error) {
	fmt.Fprintf(p.out, "\nUnresolved %s record for %s:\n  %s\n", rel.Type, rel.Source, rel.FirstLine())

	name := p.ask("Entity name (blank to skip): ")
	if name == "" {
		return nil, nil
	}

	entityType := entities.EntityType(p.ask("Entity type [company]: "))
	if entityType == "" {
		entityType = entities.TypeCompany
	}
	if !entityType.Valid() {
		fmt.Fprintf(p.out, "Unknown entity type %q, skipping\n", entityType)
		return nil, nil
	}

	entity := entities.NewEntity(entityType, name)
	if link := p.ask("Registry link (blank for none): "); link != "" {
		if res := registries.ParseLink(link); res != nil {
			entity.Type = res.Type
			if res.Type == entities.TypeCompany {
				entity.CompanyRegistration = res.Registration
			} else {
				entity.CharityRegistration = res.Registration
			}
		} else {
			p.log.Warn("unrecognized registry link", "link", link)
		}
	}

	p.log.Info("entity supplied manually", "name", entity.Name, "type", entity.Type)
	return entity, nil
}

func (p *promptCallback) ask(prompt string) string {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		return ""
	}
	return strings.TrimSpace(p.in.Text())
}
