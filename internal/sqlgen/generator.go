// Package sqlgen turns a PatchState into SQL patch text. Every row is written
// as INSERT OR REPLACE with the full column list from the schema catalog;
// columns the entity does not supply are filled by a Policy.
package sqlgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/patchmaker/internal/schema"
	"github.com/mesh-intelligence/patchmaker/pkg/types"
)

// Header and footer lines of every patch.
const (
	Header = "-- Dokkan Battle Patch Generated --"
	Footer = "-- End of Patch --"
)

// Generator writes patches. It holds no state between calls and is safe for
// concurrent use.
type Generator struct {
	catalog *schema.Catalog
	policy  Policy
	log     *zap.Logger
	patchID string
}

// Option configures a Generator.
type Option func(*Generator)

// WithCatalog replaces the default schema catalog.
func WithCatalog(c *schema.Catalog) Option {
	return func(g *Generator) { g.catalog = c }
}

// WithTimestampPolicy selects how timestamp columns are filled.
func WithTimestampPolicy(p types.TimestampPolicy) Option {
	return func(g *Generator) { g.policy.Timestamps = p }
}

// WithClock sets the clock used by the "now" timestamp policy.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.policy.Now = now }
}

// WithLogger sets the logger for generation warnings.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithPatchID adds a "-- Patch ID:" comment under the header.
func WithPatchID(id string) Option {
	return func(g *Generator) { g.patchID = id }
}

// New returns a Generator over the default catalog and the zero timestamp
// policy.
func New(opts ...Option) *Generator {
	g := &Generator{
		catalog: schema.Default(),
		policy:  DefaultPolicy(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Insert renders one INSERT OR REPLACE statement for r, newline terminated.
// A table missing from the catalog yields a warning comment instead.
func (g *Generator) Insert(r *Row) string {
	cols, err := g.catalog.Columns(r.Table())
	if err != nil {
		payload, _ := json.Marshal(r)
		g.log.Warn("no column definition for table",
			zap.String("table", r.Table()), zap.ByteString("row", payload))
		return fmt.Sprintf("-- WARN: No column definition for table %s. Could not generate SQL for: %s\n",
			r.Table(), payload)
	}
	names := make([]string, len(cols))
	values := make([]string, len(cols))
	for i, col := range cols {
		names[i] = schema.QuoteIdent(col)
		values[i] = FormatValue(g.policy.ValueFor(r.Table(), col, r))
	}
	return fmt.Sprintf("INSERT OR REPLACE INTO \"main\".%s (%s) VALUES (%s);\n",
		schema.QuoteIdent(r.Table()), strings.Join(names, ", "), strings.Join(values, ", "))
}

// Generate renders the whole patch. Sections appear in a fixed order and
// empty sections are omitted. Generation never fails; problems become
// comment lines in the output.
func (g *Generator) Generate(state *types.PatchState) string {
	if state == nil {
		state = types.NewPatchState()
	}
	p := &patch{g: g}
	p.line(Header)
	if g.patchID != "" {
		p.line("-- Patch ID: " + g.patchID)
	}
	p.blank()

	p.section("card unique infos", func() {
		for _, u := range state.CardUniqueInfos {
			p.row(UniqueInfoRow(u))
		}
	})

	var categories []types.CardCategoryEntry
	var activeLinks []types.CardActiveSkill
	seenCategory := make(map[string]bool)
	p.section("cards", func() {
		for _, f := range state.CardForms {
			p.row(CardRow(f))
			for _, e := range CategoryEntries(f) {
				if seenCategory[e.ID] {
					continue
				}
				seenCategory[e.ID] = true
				categories = append(categories, e)
			}
			if link, ok := CardActiveSkill(f); ok {
				activeLinks = append(activeLinks, link)
			}
		}
	})
	p.section("card_card_categories", func() {
		for _, e := range categories {
			p.row(CategoryEntryRow(e))
		}
	})

	p.section("leader_skill_sets", func() {
		for _, set := range state.LeaderSkillSets {
			p.row(LeaderSkillSetRow(set))
			p.line("-- leader_skills for set " + set.ID)
			for _, s := range set.Skills {
				p.row(LeaderSkillRow(set.ID, s))
			}
		}
	})

	var relations []*Row
	p.section("passive_skill_sets", func() {
		for _, set := range state.PassiveSkillSets {
			p.row(PassiveSkillSetRow(set))
			p.line("-- passive_skills for set " + set.ID)
			for _, s := range set.Skills {
				p.row(PassiveSkillRow(s))
				relations = append(relations, PassiveRelationRow(set.ID, s.ID))
			}
		}
	})
	p.section("passive_skill_set_relations", func() {
		for _, r := range relations {
			p.row(r)
		}
	})

	p.section("special_sets", func() {
		for _, set := range state.SpecialSets {
			p.row(SpecialSetRow(set))
			p.line("-- specials for set " + set.ID)
			for _, s := range set.Skills {
				p.row(SpecialRow(set.ID, s))
			}
		}
	})
	p.section("card_specials (links cards to special_sets)", func() {
		for _, cs := range state.CardSpecials {
			p.row(CardSpecialRow(cs))
		}
	})

	p.section("active_skill_sets", func() {
		for _, set := range state.ActiveSkillSets {
			p.row(ActiveSkillSetRow(set))
			p.line("-- active_skills for set " + set.ID)
			for _, s := range set.Skills {
				p.row(ActiveSkillRow(set.ID, s))
			}
		}
	})
	p.section("card_active_skills (links cards to active_skill_sets)", func() {
		for _, l := range activeLinks {
			p.row(CardActiveSkillRow(l))
		}
	})

	p.section("passive_skill_effects", func() {
		for _, e := range state.PassiveSkillEffects {
			p.row(PassiveSkillEffectRow(e))
		}
	})
	p.section("effect_packs", func() {
		for _, e := range state.EffectPacks {
			p.row(EffectPackRow(e))
		}
	})

	if state.IsEZA && state.OptimalAwakeningGrowth != nil && state.BaseCardIDForEZA != "" {
		p.section("EZA Update", func() {
			p.row(GrowthRow(*state.OptimalAwakeningGrowth))
			p.line(g.ezaUpdate(*state.OptimalAwakeningGrowth, state.BaseCardIDForEZA))
		})
	}

	p.line(Footer)
	return p.b.String()
}

// ezaUpdate patches the base card in place with the growth's caps and skill
// sets. updated_at is only touched under the "now" policy; with literal zero
// timestamps the store keeps its own value.
func (g *Generator) ezaUpdate(oag types.OptimalAwakeningGrowth, baseCardID string) string {
	assign := []string{
		`"optimal_awakening_grow_type" = ` + FormatValue(optional(oag.GrowthTypeID)),
		`"lv_max" = ` + FormatValue(oag.Val2MaxLevel),
		`"skill_lv_max" = ` + FormatValue(oag.Val3SkillLvMax),
		`"passive_skill_set_id" = ` + FormatValue(optional(oag.PassiveSkillSetID)),
		`"leader_skill_set_id" = ` + FormatValue(optional(oag.LeaderSkillSetID)),
	}
	if g.policy.Timestamps == types.TimestampNow {
		assign = append(assign, `"updated_at" = `+FormatValue(g.policy.timestamp()))
	}
	return fmt.Sprintf(`UPDATE "main"."cards" SET %s WHERE "id" = %s;`,
		strings.Join(assign, ", "), FormatValue(baseCardID))
}

func optional(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// patch accumulates output. Sections are buffered so that a section with no
// rows leaves no trace.
type patch struct {
	g *Generator
	b strings.Builder
	n int
}

func (p *patch) line(s string) {
	p.b.WriteString(s)
	p.b.WriteByte('\n')
}

func (p *patch) blank() { p.b.WriteByte('\n') }

func (p *patch) row(r *Row) {
	p.b.WriteString(p.g.Insert(r))
	p.n++
}

func (p *patch) section(title string, body func()) {
	mark := p.b.Len()
	rows := p.n
	p.line("-- " + title)
	body()
	if p.n == rows {
		s := p.b.String()[:mark]
		p.b.Reset()
		p.b.WriteString(s)
		return
	}
	p.blank()
}
