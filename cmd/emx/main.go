package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	tiledb "github.com/TileDB-Inc/TileDB-Go"
	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	emx "github.com/sixy6e/go-emx"
)

// info_emx decodes a single pass over an EMX file and writes the metadata
// and record index as JSON.
func info_emx(emx_uri, config_uri, outdir_uri string, in_memory bool, conf emx.Config) error {
	dir, file := filepath.Split(emx_uri)
	if outdir_uri == "" {
		outdir_uri = dir
	}

	log.Println("Processing EMX:", emx_uri)
	src := emx.OpenEmx(emx_uri, config_uri, in_memory)
	defer src.Close()

	ident, err := emx.Identify(src.Stream)
	if err != nil {
		return err
	}
	log.Println("Model:", ident.Model_name, "ByteOrder:", ident.Byte_order)

	file_info, err := src.Info(conf)
	if err != nil {
		return err
	}

	log.Println("Writing index")
	out_uri := filepath.Join(outdir_uri, file+"-index.json")
	_, err = emx.WriteJson(out_uri, config_uri, file_info)

	return err
}

// convert_emx handles the conversion process for a single EMX file.
// The record index is written as JSON; the attitude and position series are
// written as TileDB arrays within a group.
func convert_emx(emx_uri, config_uri, outdir_uri string, in_memory, metadata_only bool, conf emx.Config) error {
	var (
		out_uri string
		err     error
		config  *tiledb.Config
	)

	dir, file := filepath.Split(emx_uri)
	if outdir_uri == "" {
		outdir_uri = dir
	}

	log.Println("Processing EMX:", emx_uri)
	src := emx.OpenEmx(emx_uri, config_uri, in_memory)
	defer src.Close()

	log.Println("Building index; Collating metadata")
	file_info, err := src.Info(conf)
	if err != nil {
		return err
	}

	log.Println("Writing index")
	out_uri = filepath.Join(outdir_uri, file+"-index.json")
	_, err = emx.WriteJson(out_uri, config_uri, file_info)
	if err != nil {
		return err
	}

	if !metadata_only {
		// get a generic config if no path provided
		if config_uri == "" {
			config, err = tiledb.NewConfig()
			if err != nil {
				return err
			}
		} else {
			config, err = tiledb.LoadConfig(config_uri)
			if err != nil {
				return err
			}
		}

		defer config.Free()

		ctx, err := tiledb.NewContext(config)
		if err != nil {
			return err
		}
		defer ctx.Free()

		grp_uri := filepath.Join(outdir_uri, file+".tiledb")
		grp, err := tiledb.NewGroup(ctx, grp_uri)
		if err != nil {
			return err
		}
		defer grp.Free()

		err = grp.Create()
		if err != nil {
			return errors.Join(err, errors.New("Error creating tiledb group"))
		}

		err = grp.Open(tiledb.TILEDB_WRITE)
		if err != nil {
			return errors.Join(err, errors.New("Error opening tiledb group in write mode"))
		}

		log.Println("Decoding attitude and position series")
		_, _ = src.Stream.Seek(0, 0)
		decoder := src.Decoder(conf)
		attitude, position, err := emx.CollectSeries(decoder)
		if err != nil {
			return err
		}

		log.Println("Processing Attitude")
		att_name := "Attitude.tiledb"
		out_uri = filepath.Join(grp_uri, att_name)
		err = attitude.ToTileDB(out_uri, ctx)
		if err != nil {
			return err
		}
		err = grp.AddMember(att_name, "Attitude", true)
		if err != nil {
			return errors.Join(err, errors.New("Error adding attitude to group"))
		}

		log.Println("Processing Position")
		pos_name := "Position.tiledb"
		out_uri = filepath.Join(grp_uri, pos_name)
		err = position.ToTileDB(out_uri, ctx)
		if err != nil {
			return err
		}
		err = grp.AddMember(pos_name, "Position", true)
		if err != nil {
			return errors.Join(err, errors.New("Error adding position to group"))
		}
	}

	log.Println("Finished EMX:", emx_uri)

	return nil
}

// convert_emx_list is responsible for submitting a list of EMX files to a
// processing pool that converts each EMX file. The processing pool uses
// 2 * n_CPUs workers to spread the work across.
func convert_emx_list(uri, config_uri, outdir_uri string, in_memory, metadata_only bool, conf emx.Config) error {
	log.Println("Searching uri:", uri)
	items := emx.FindEmx(uri, config_uri)
	log.Println("Number of EMX files to process:", len(items))

	// Create a context that will be cancelled when the user presses Ctrl+C (process receives termination signal).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// fixed pool
	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		item_uri := name
		pool.Submit(func() {
			err := convert_emx(item_uri, config_uri, outdir_uri, in_memory, metadata_only, conf)
			if err != nil {
				log.Println("Failed EMX:", item_uri, err)
			}
		})
	}

	return nil
}

func decode_flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "emx-uri",
			Usage: "URI or pathname to an EMX file.",
		},
		&cli.StringFlag{
			Name:  "config-uri",
			Usage: "URI or pathname to a TileDB config file.",
		},
		&cli.StringFlag{
			Name:  "outdir-uri",
			Usage: "URI or pathname to an output directory.",
		},
		&cli.BoolFlag{
			Name:  "in-memory",
			Usage: "Read the entire contents of an EMX file into memory before processing.",
		},
		&cli.BoolFlag{
			Name:  "metadata-only",
			Usage: "Only decode and export metadata relating to the EMX file.",
		},
		&cli.BoolFlag{
			Name:  "ignore-wc",
			Usage: "Skip over WATER_COLUMN records without decoding them.",
		},
		&cli.BoolFlag{
			Name:  "ignore-checksum",
			Usage: "Tolerate records whose checksum doesn't verify.",
		},
		&cli.IntFlag{
			Name:  "debug-level",
			Usage: "Gating level for diagnostic events.",
		},
	}
}

func config_from(cCtx *cli.Context) emx.Config {
	return emx.Config{
		Ignore_wc:       cCtx.Bool("ignore-wc"),
		Ignore_checksum: cCtx.Bool("ignore-checksum"),
		Debug_level:     cCtx.Int("debug-level"),
	}
}

func main() {
	app := &cli.App{
		Commands: []*cli.Command{
			&cli.Command{
				Name:  "info",
				Flags: decode_flags(),
				Action: func(cCtx *cli.Context) error {
					err := info_emx(cCtx.String("emx-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), cCtx.Bool("in-memory"), config_from(cCtx))
					return err
				},
			},
			&cli.Command{
				Name:  "convert",
				Flags: decode_flags(),
				Action: func(cCtx *cli.Context) error {
					err := convert_emx(cCtx.String("emx-uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), config_from(cCtx))
					return err
				},
			},
			&cli.Command{
				Name: "convert-trawl",
				Flags: append(decode_flags(), &cli.StringFlag{
					Name:  "uri",
					Usage: "URI or pathname to a directory containing EMX files.",
				}),
				Action: func(cCtx *cli.Context) error {
					err := convert_emx_list(cCtx.String("uri"), cCtx.String("config-uri"), cCtx.String("outdir-uri"), cCtx.Bool("in-memory"), cCtx.Bool("metadata-only"), config_from(cCtx))
					return err
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
