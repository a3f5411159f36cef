package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"

	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/tags"
)

func main() {
	var (
		base     = flag.String("base", "https://github.com/PrismarineJS/minecraft-data.git", "base url")
		platform = flag.String("platform", "pc", "platform of schemas")
		ver      = flag.String("version", "1.8", "version of schemas")
		out      = flag.String("o", "./data", "output dir path")
		tagsURL  = flag.String("tags", "", "go-getter source of a tag pack to fetch next to the blocks")
		compress = flag.Bool("zstd", true, "store blocks.json zstd-compressed")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *out == "" || *platform == "" || *ver == "" {
		log.Error("output dir, platform and version are required")
		os.Exit(2)
	}

	path := filepath.Join(*out, fmt.Sprintf("%s-%s", *platform, *ver))
	if err := download(log, path, *base, *platform, *ver, *tagsURL, *compress); err != nil {
		log.Error("download failed", "path", path, "error", err)
		os.Exit(1)
	}
}

func download(log *slog.Logger, path, base, platform, ver, tagsURL string, compress bool) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}

	log.Info("start downloading schemes", "path", path)

	// https://github.com/PrismarineJS/minecraft-data/tree/master/data/pc/1.8
	url := fmt.Sprintf("git::%s//data/%s/%s", base, platform, ver)
	if err := get.Get(path, url); err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}

	blocksPath := filepath.Join(path, "blocks.json")
	if compress {
		if err := gamedata.CompressBlocks(blocksPath, blocksPath+".zst"); err != nil {
			return err
		}
		blocksPath += ".zst"
	}
	blocks, err := gamedata.LoadBlocks(blocksPath)
	if err != nil {
		return err
	}
	log.Info("blocks ready", "path", blocksPath, "blocks", len(blocks.All()))

	if tagsURL == "" {
		return nil
	}
	tagsPath := filepath.Join(path, "tags"+filepath.Ext(tagsURL))
	if err := get.GetFile(tagsPath, tagsURL); err != nil {
		return fmt.Errorf("get %s: %w", tagsURL, err)
	}
	pack, err := tags.Load(tagsPath, blocks)
	if err != nil {
		return err
	}
	aliases, _ := pack.Aliases()
	log.Info("tag pack ready", "path", tagsPath, "aliases", len(aliases))
	return nil
}
