package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ZRonchy/vellum/binding"
	"github.com/ZRonchy/vellum/dsl"
	"github.com/ZRonchy/vellum/font"
	"github.com/ZRonchy/vellum/renderer"
	canvasrenderer "github.com/ZRonchy/vellum/renderer/canvas"
	"github.com/ZRonchy/vellum/typeset"
)

func main() {
	input := flag.String("in", "examples/demo.sheet", "sheet 文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	debug := flag.String("debug", "", "排版调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "绑定到 sheet 的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	if err := run(*input, *output, *debug, inputData); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", *output)
}

// run 串联解析、编译、数据绑定、排版与渲染。
func run(inputPath, outputPath, debugPath string, data any) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 sheet 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	astDoc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 sheet 失败: %w", err)
	}

	registry := font.NewRegistry(filepath.Dir(inputPath))
	sheet, err := dsl.Compile(astDoc, registry)
	if err != nil {
		return fmt.Errorf("编译 sheet 失败: %w", err)
	}

	r := canvasrenderer.NewRenderer(registry)
	doc, err := layoutSheet(sheet, data, r)
	if err != nil {
		return fmt.Errorf("排版失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(doc, debugPath); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	var rend renderer.Renderer = r
	pdfBytes, err := rend.Render(doc)
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

// layoutSheet 对每个文本块做数据绑定与排版；带 box 的块交给渲染引擎对齐。
func layoutSheet(sheet *dsl.Sheet, data any, m typeset.Measurer) (*typeset.Document, error) {
	doc := &typeset.Document{Width: sheet.Width, Height: sheet.Height}
	for _, b := range sheet.Blocks {
		bound := binding.Expand(b.Text, data)
		if b.HasBox() {
			doc.Boxes = append(doc.Boxes, typeset.BoxedText{
				Text: bound, X: b.X, Y: b.Y, Width: b.BoxWidth, Height: b.BoxHeight,
			})
			continue
		}
		block, err := typeset.Layout(bound, typeset.Point{X: b.X, Y: b.Y}, m)
		if err != nil {
			return nil, fmt.Errorf("文本块 %s: %w", b.Name, err)
		}
		doc.Blocks = append(doc.Blocks, *block)
	}
	return doc, nil
}

func writeDebug(doc *typeset.Document, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := typeset.WriteDebugJSON(doc, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
