// Package main provides localization for the framefix CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Output":              "出力",
		"Duplicate Detection": "重複検出",
		"Video Encoding":      "動画エンコード",
		"Reports and Debug":   "レポートとデバッグ",
		"Logging":             "ログ",

		// Root command
		"Remove stuck and duplicated frames from a video": "動画から停止・重複フレームを取り除く",

		// Output flags
		"YAML configuration file":                                     "YAML設定ファイル",
		"Output video path (default: <input>_processed.mp4)":          "出力動画のパス（デフォルト: <入力>_processed.mp4）",
		"Directory for the output video (default: current directory)": "出力動画のディレクトリ（デフォルト: カレントディレクトリ）",
		"Score frames and report without deleting or encoding":        "削除やエンコードをせずにフレームを評価して報告",

		// Detection flags
		"Similarity above which the earlier frame is dropped":         "この類似度を超えると前のフレームを削除",
		"Frames per comparison batch":                                 "比較バッチあたりのフレーム数",
		"Also compare the last frame of each batch with the next one": "各バッチの最終フレームも次のフレームと比較",
		"Similarity metric (pixel, ffmpeg)":                           "類似度の指標（pixel, ffmpeg）",
		"Parallel workers (0 = number of CPUs)":                       "並列ワーカー数（0 = CPU数）",

		// Encoding flags
		"Output frame rate (0 = read from input, falling back to 30)": "出力フレームレート（0 = 入力から取得、取得できなければ30）",
		"x264 preset":                                     "x264プリセット",
		"Quality preset (low, medium, high)":              "品質プリセット（low, medium, high）",
		"x264 CRF value (0-51, overrides quality preset)": "x264のCRF値（0-51、品質プリセットを上書き）",

		// ffmpeg flags
		"Path to the ffmpeg executable":               "ffmpeg実行ファイルのパス",
		"zstd-compressed ffmpeg executable to unpack": "展開するzstd圧縮済みffmpeg実行ファイル",
		"Parent directory for frame workspaces":       "フレーム作業ディレクトリの親ディレクトリ",

		// Report flags
		"Write a Markdown summary to this file": "Markdownサマリーをこのファイルに出力",
		"Write Prometheus metrics to this file": "Prometheusメトリクスをこのファイルに出力",
		"Enable debug output":                   "デバッグ出力を有効化",
		"Directory for debug output":            "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, structured)":     "ログ形式（console, structured）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Errors
		"Error: %v": "エラー: %v",

		// Summary content
		"Frame Repair Summary":      "フレーム修復サマリー",
		"Input":                     "入力",
		"Job ID":                    "ジョブID",
		"State":                     "状態",
		"Error":                     "エラー",
		"Dry run, no video written": "ドライランのため動画は出力されていません",
		"Metric":                    "指標",
		"Threshold":                 "しきい値",
		"Batch Size":                "バッチサイズ",
		"Batch Boundaries Scored":   "バッチ境界の比較",
		"Input Frames":              "入力フレーム数",
		"Kept Frames":               "保持フレーム数",
		"Dropped Frames":            "削除フレーム数",
		"Comparison Errors":         "比較エラー",
		"Delete Errors":             "削除エラー",
		"Dropped frame numbers":     "削除したフレーム番号",
		"Output Video":              "出力動画",
		"Frames":                    "フレーム数",
		"Unknown":                   "不明",
		"Frame Rate":                "フレームレート",
		"File Size":                 "ファイルサイズ",
		"Timing":                    "処理時間",
		"Stage":                     "ステージ",
		"Duration":                  "所要時間",
		"Total":                     "合計",
		"Generated at":              "生成日時",
		"Yes":                       "はい",
		"No":                        "いいえ",

		// Job states and stages
		"done":   "完了",
		"failed": "失敗",
		"decode": "デコード",
		"score":  "比較",
		"filter": "削除と連番化",
		"encode": "エンコード",
	})
}
