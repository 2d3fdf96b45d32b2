// Package reeler decodes and re-encodes the tagged-chunk container
// format used by packaged movies: the memory map / key table that locate
// and cross-reference chunks, the cast list / cast / cast member /
// cast info chunks, the fixed-layout config chunk, and the script
// context / script / names triad.
package reeler

import (
	"fmt"

	"github.com/systemshift/reeler/internal/cast"
	"github.com/systemshift/reeler/internal/chunk"
	"github.com/systemshift/reeler/internal/config"
	"github.com/systemshift/reeler/internal/direrr"
	"github.com/systemshift/reeler/internal/logger"
	"github.com/systemshift/reeler/internal/script"
)

// Options configures a Directory. There is no external config file to
// parse here — Version and DotSyntax are supplied by whatever outer
// tooling already knows the movie's format version, so Options stays a
// plain struct.
type Options struct {
	Version   uint16
	DotSyntax bool
	Logger    logger.Logger
}

// Directory is the exclusive owner of every chunk faulted in during a
// load. Cross-references between chunks are resolved through the
// Directory's Get* methods, which cache one chunk per section id; the
// resolved chunks then hold plain Go pointers to each other (member to
// script, script to context and back).
type Directory struct {
	source    chunk.Source
	version   uint16
	dotSyntax bool
	log       logger.Logger

	InitialMap chunk.InitialMap
	MemoryMap  *chunk.MemoryMap
	KeyTable   *chunk.KeyTable

	castLists map[int32]*cast.ListChunk
	casts     map[int32]*cast.Chunk
	members   map[int32]*cast.MemberChunk
	contexts  map[int32]*script.ContextChunk
	scripts   map[int32]*script.Chunk
	names     map[int32]*script.NamesChunk
	configs   map[int32]*config.Chunk
}

// New wraps a chunk.Source (the outer container reader's output) in a
// Directory, ready for Load.
func New(source chunk.Source, opts Options) *Directory {
	log := opts.Logger
	if log == nil {
		log = logger.DefaultLogger
	}
	return &Directory{
		source:    source,
		version:   opts.Version,
		dotSyntax: opts.DotSyntax,
		log:       log,

		castLists: make(map[int32]*cast.ListChunk),
		casts:     make(map[int32]*cast.Chunk),
		members:   make(map[int32]*cast.MemberChunk),
		contexts:  make(map[int32]*script.ContextChunk),
		scripts:   make(map[int32]*script.Chunk),
		names:     make(map[int32]*script.NamesChunk),
		configs:   make(map[int32]*config.Chunk),
	}
}

func (d *Directory) Version() uint16 { return d.version }
func (d *Directory) DotSyntax() bool { return d.dotSyntax }

// ChunkExists and ChunkBytes satisfy both cast.Resolver's and
// script.Resolver's embedded chunk.Source-shaped methods by delegating
// straight to the outer reader.
func (d *Directory) ChunkExists(fourcc chunk.Fourcc, sectionID int32) bool {
	return d.source.ChunkExists(fourcc, sectionID)
}

func (d *Directory) ChunkBytes(fourcc chunk.Fourcc, sectionID int32) ([]byte, error) {
	return d.source.ChunkBytes(fourcc, sectionID)
}

// findSingleton scans the memory map for the first entry tagged fourcc.
// The config, key table, and cast list chunks are located this way since
// nothing in the key table names them.
func (d *Directory) findSingleton(fourcc chunk.Fourcc) (int32, bool) {
	for i, e := range d.MemoryMap.Entries {
		if e.Fourcc == fourcc {
			return int32(i), true
		}
	}
	return 0, false
}

// findAll scans the memory map for every entry tagged fourcc, in memory
// map order. Per-library "CAS*" chunks aren't named by the key table, so
// the Nth cast list entry is matched to the Nth such section.
func (d *Directory) findAll(fourcc chunk.Fourcc) []int32 {
	var out []int32
	for i, e := range d.MemoryMap.Entries {
		if e.Fourcc == fourcc {
			out = append(out, int32(i))
		}
	}
	return out
}

// Load materializes the initial map, memory map, key table, and config
// chunk eagerly, matching the spec's description of the config chunk
// standing alone. Everything else (casts, scripts) is faulted in lazily
// as callers ask for it.
func (d *Directory) Load() error {
	imapBytes, err := d.source.ChunkBytes(chunk.FourccInitialMap, 0)
	if err != nil {
		return fmt.Errorf("loading initial map: %w", err)
	}
	d.InitialMap, err = chunk.ReadInitialMap(imapBytes)
	if err != nil {
		return fmt.Errorf("parsing initial map: %w", err)
	}

	mmapBytes, err := d.source.ChunkBytes(chunk.FourccMemoryMap, 1)
	if err != nil {
		return fmt.Errorf("loading memory map: %w", err)
	}
	d.MemoryMap, err = chunk.ReadMemoryMap(mmapBytes)
	if err != nil {
		return fmt.Errorf("parsing memory map: %w", err)
	}

	keySection, ok := d.findSingleton(chunk.FourccKeyTable)
	if !ok {
		return fmt.Errorf("loading key table: %w", direrr.ErrUnresolvedReference)
	}
	keyBytes, err := d.source.ChunkBytes(chunk.FourccKeyTable, keySection)
	if err != nil {
		return fmt.Errorf("loading key table: %w", err)
	}
	d.KeyTable, err = chunk.ReadKeyTable(keyBytes)
	if err != nil {
		return fmt.Errorf("parsing key table: %w", err)
	}

	if cfgSection, ok := d.findSingleton(chunk.FourccConfig); ok {
		if _, err := d.GetConfig(cfgSection); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	} else if cfgSection, ok := d.findSingleton(chunk.FourccConfigAlt); ok {
		if _, err := d.GetConfig(cfgSection); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	return nil
}

// GetConfig faults in the config chunk at sectionID, idempotently.
func (d *Directory) GetConfig(sectionID int32) (*config.Chunk, error) {
	if c, ok := d.configs[sectionID]; ok {
		return c, nil
	}
	fourcc := chunk.FourccConfig
	if !d.source.ChunkExists(fourcc, sectionID) {
		fourcc = chunk.FourccConfigAlt
	}
	buf, err := d.source.ChunkBytes(fourcc, sectionID)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Read(buf, d.log)
	if err != nil {
		return nil, err
	}
	d.configs[sectionID] = cfg
	return cfg, nil
}

// GetCastList faults in the movie-wide cast list.
func (d *Directory) GetCastList() (*cast.ListChunk, error) {
	sectionID, ok := d.findSingleton(chunk.FourccCastList)
	if !ok {
		return nil, fmt.Errorf("cast list: %w", direrr.ErrUnresolvedReference)
	}
	if lc, ok := d.castLists[sectionID]; ok {
		return lc, nil
	}
	buf, err := d.source.ChunkBytes(chunk.FourccCastList, sectionID)
	if err != nil {
		return nil, err
	}
	lc, err := cast.ReadCastList(buf)
	if err != nil {
		return nil, err
	}
	d.castLists[sectionID] = lc
	return lc, nil
}

// GetCast faults in and populates a single cast library at sectionID.
func (d *Directory) GetCast(sectionID int32, name string, id int32, minMember int32) (*cast.Chunk, error) {
	if c, ok := d.casts[sectionID]; ok {
		return c, nil
	}
	buf, err := d.source.ChunkBytes(chunk.FourccCast, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading cast %d: %w", sectionID, err)
	}
	c, err := cast.Read(buf)
	if err != nil {
		return nil, err
	}
	if err := c.Populate(d, name, id, minMember); err != nil {
		return nil, err
	}
	d.casts[sectionID] = c
	return c, nil
}

// GetCastMember implements cast.Resolver: fault in a "CASt" chunk.
func (d *Directory) GetCastMember(sectionID int32) (*cast.MemberChunk, error) {
	if m, ok := d.members[sectionID]; ok {
		return m, nil
	}
	buf, err := d.source.ChunkBytes(chunk.FourccCastMember, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading cast member %d: %w", sectionID, err)
	}
	m, err := cast.ReadMember(buf, d.version)
	if err != nil {
		return nil, err
	}
	d.members[sectionID] = m
	return m, nil
}

// KeyTableEntriesForCast implements cast.Resolver.
func (d *Directory) KeyTableEntriesForCast(castID int32) []chunk.KeyTableEntry {
	return d.KeyTable.EntriesForCast(castID)
}

// GetScriptContext implements cast.Resolver: fault in, populate, and
// cache an "Lctx"/"LctX" chunk.
func (d *Directory) GetScriptContext(sectionID int32) (*script.ContextChunk, error) {
	if ctx, ok := d.contexts[sectionID]; ok {
		return ctx, nil
	}
	fourcc := chunk.FourccScriptContext
	if !d.source.ChunkExists(fourcc, sectionID) {
		fourcc = chunk.FourccScriptContext2
	}
	buf, err := d.source.ChunkBytes(fourcc, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading script context %d: %w", sectionID, err)
	}
	ctx, err := script.ReadContext(buf)
	if err != nil {
		return nil, err
	}
	d.contexts[sectionID] = ctx
	if err := ctx.Populate(d); err != nil {
		return nil, err
	}
	return ctx, nil
}

// GetNames implements script.Resolver: fault in and cache an "Lnam" chunk.
func (d *Directory) GetNames(sectionID int32) (*script.NamesChunk, error) {
	if n, ok := d.names[sectionID]; ok {
		return n, nil
	}
	buf, err := d.source.ChunkBytes(chunk.FourccScriptNames, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading script names %d: %w", sectionID, err)
	}
	n, err := script.ReadNames(buf)
	if err != nil {
		return nil, err
	}
	d.names[sectionID] = n
	return n, nil
}

// GetScript implements script.Resolver: fault in and cache an "Lscr" chunk.
func (d *Directory) GetScript(sectionID int32) (*script.Chunk, error) {
	if s, ok := d.scripts[sectionID]; ok {
		return s, nil
	}
	buf, err := d.source.ChunkBytes(chunk.FourccScript, sectionID)
	if err != nil {
		return nil, fmt.Errorf("loading script %d: %w", sectionID, err)
	}
	s, err := script.Read(buf)
	if err != nil {
		return nil, err
	}
	d.scripts[sectionID] = s
	return s, nil
}

// LoadCasts faults in and populates every cast library named by the
// movie-wide cast list, in list order. The Nth list entry is matched to
// the Nth "CAS*" section in the memory map.
func (d *Directory) LoadCasts() ([]*cast.Chunk, error) {
	lc, err := d.GetCastList()
	if err != nil {
		return nil, err
	}
	sections := d.findAll(chunk.FourccCast)
	if len(sections) < len(lc.Entries) {
		return nil, fmt.Errorf("cast list names %d casts but memory map has %d CAS* sections: %w", len(lc.Entries), len(sections), direrr.ErrUnresolvedReference)
	}
	out := make([]*cast.Chunk, 0, len(lc.Entries))
	for i, e := range lc.Entries {
		c, err := d.GetCast(sections[i], e.Name, e.ID, int32(e.MinMember))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
