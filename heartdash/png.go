// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"
)

var cmdPNGFlags = flag.NewFlagSet(os.Args[0]+" png", flag.ExitOnError)

var (
	pngSession sessionFlags
	pngOut     string
	pngScale   float64
	pngWidth   int
	pngHeight  int
	pngTimeout time.Duration
)

func init() {
	f := cmdPNGFlags
	f.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s png [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Requires Chrome or Chromium.\n")
		f.PrintDefaults()
	}
	pngSession.register(f, true)
	f.StringVar(&pngOut, "o", "dashboard.png", "write the screenshot to `file`")
	f.Float64Var(&pngScale, "scale", 1, "scale the screenshot by `factor` in (0, 1]")
	f.IntVar(&pngWidth, "width", 1900, "browser window width")
	f.IntVar(&pngHeight, "height", 1300, "browser window height")
	f.DurationVar(&pngTimeout, "timeout", 30*time.Second, "give up after `duration`")
	registerSubcommand("png", "- screenshot the dashboard with a headless browser", cmdPNG, f)
}

func cmdPNG() {
	if !(pngScale > 0 && pngScale <= 1) {
		log.Fatalf("-scale must be in (0, 1]")
	}
	srv, err := loadServer(&pngSession)
	if err != nil {
		log.Fatal(err)
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatal(err)
	}
	go http.Serve(ln, srv)

	ctx, cancel := context.WithTimeout(context.Background(), pngTimeout)
	defer cancel()
	shot, err := screenshot(ctx, "http://"+ln.Addr().String()+"/", pngWidth, pngHeight)
	if err != nil {
		log.Fatal(err)
	}
	if pngScale != 1 {
		if shot, err = downscale(shot, pngScale); err != nil {
			log.Fatal(err)
		}
	}
	if err := os.WriteFile(pngOut, shot, 0666); err != nil {
		log.Fatal(err)
	}
}

// screenshot loads url in a headless browser and returns a PNG of the
// whole page once every image has loaded.
func screenshot(ctx context.Context, url string, width, height int) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.WindowSize(width, height),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	ctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	var buf []byte
	var loaded bool
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Poll(`Array.from(document.images).every(img => img.complete)`, &loaded),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("capturing %s: %w", url, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("capturing %s: empty screenshot", url)
	}
	return buf, nil
}

// downscale scales the PNG image in data by factor.
func downscale(data []byte, factor float64) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	sb := src.Bounds()
	w, h := int(float64(sb.Dx())*factor), int(float64(sb.Dy())*factor)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("scaling %dx%d image by %g leaves nothing", sb.Dx(), sb.Dy(), factor)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
