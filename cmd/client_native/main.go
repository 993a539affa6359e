package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/tuannm99/novaclick"
	"github.com/tuannm99/novaclick/block"
	"github.com/tuannm99/novaclick/column"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:9000", "server address")
	cfgPath := flag.String("config", "", "yaml config file (overrides -addr)")
	flag.Parse()

	opts := novaclick.Options{Addr: *addr, DialTimeout: 2 * time.Second}
	if *cfgPath != "" {
		cfg, err := novaclick.LoadConfig(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		opts = cfg.Options()
	}

	c, err := novaclick.Dial(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	fmt.Printf("connected to %s %d.%d (revision %d)\n",
		c.Server().Name, c.Server().VersionMajor, c.Server().VersionMinor, c.Server().Revision)

	if err := c.Execute("CREATE DATABASE IF NOT EXISTS test"); err != nil {
		log.Fatal(err)
	}
	if err := c.Execute("CREATE TABLE IF NOT EXISTS test.array (arr Array(UInt64)) ENGINE = Memory"); err != nil {
		log.Fatal(err)
	}

	arr := column.NewColumnArray(column.NewColumnUInt64())
	id := column.NewColumnUInt64()
	for _, v := range []uint64{1, 3, 7, 9} {
		id.AppendValue(v)
		if err := arr.AppendAsColumn(id); err != nil {
			log.Fatal(err)
		}
	}

	b := block.New()
	if err := b.AppendColumn("arr", arr); err != nil {
		log.Fatal(err)
	}
	if err := c.Insert("test.array", b); err != nil {
		log.Fatal(err)
	}

	var result block.Block
	if err := c.SelectInto("SELECT arr FROM test.array", &result); err != nil {
		log.Fatal(err)
	}
	col, err := result.Column(0)
	if err != nil {
		log.Fatal(err)
	}
	got := col.(*column.ColumnArray)
	inner := got.Inner().(*column.ColumnUInt64)
	for row := 0; row < result.RowCount(); row++ {
		off := got.Offset(row)
		fmt.Println(inner.Data()[off : off+got.ElementCount(row)])
	}
}
