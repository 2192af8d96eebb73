package infra

// pdf.go: EPI compliance documents rendered with go-pdf/fpdf.
//
//   - Ficha de controle: one employee, every delivery in a period, as a table.
//   - Movimentação: a single delivery as a field/value table.
//
// Both share the frame, company header, employee block, responsibility term,
// signature lines and footer. Output is returned as bytes; nothing touches disk.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Empresa is the fixed header printed on every document.
type Empresa struct {
	Nome               string
	CNPJ               string
	Endereco           string
	Telefone           string
	ResponsavelTecnico string
}

// Colaborador identifies the employee the document refers to.
type Colaborador struct {
	Nome      string
	Matricula string
	Setor     string
}

// LinhaFicha is one row of the control sheet table. Dates are preformatted.
type LinhaFicha struct {
	Epi               string
	CA                string
	Quantidade        int
	Entrega           string
	DevolucaoDescarte string
	Status            string
}

// FichaEpiDoc is the input of RenderFichaEpi. Periodo empty means "whole period".
type FichaEpiDoc struct {
	Empresa     Empresa
	Colaborador Colaborador
	Emissao     time.Time
	Periodo     string
	Linhas      []LinhaFicha
}

// Campo is a label/value pair of the movement detail table.
type Campo struct {
	Rotulo string
	Valor  string
}

// MovimentacaoDoc is the input of RenderMovimentacao.
type MovimentacaoDoc struct {
	Empresa     Empresa
	Colaborador Colaborador
	Emissao     time.Time
	Detalhes    []Campo
}

const termoResponsabilidade = "Declaro para os devidos fins que recebi o(s) EPI(s) relacionado(s) neste documento e me comprometo a:\n" +
	"• Usá-los apenas para as finalidades a que se destinam;\n" +
	"• Responsabilizar-me por sua guarda e conservação;\n" +
	"• Comunicar ao empregador qualquer modificação que os torne impróprios para o uso;\n" +
	"• Responsabilizar-me pela danificação do E.P.I. devido ao uso inadequado ou fora das atividades a que se destinam, bem como pelo seu extravio.\n\n" +
	"Declaro ainda estar ciente de que o uso é obrigatório, sob pena de ser punido conforme LEI nº 6.514/1977, artigo 158:\n" +
	"“Recusa injustificada ao uso do EPI constitui ato faltoso, autorizando a dispensa por justa causa.”\n\n" +
	"Declaro também que recebi treinamento referente ao uso e conservação do E.P.I. segundo as Normas de Segurança do Trabalho."

const rodape = "Documento gerado automaticamente pelo Sistema de Controle de EPI"

// documento wraps an A4 fpdf page with the UTF-8 → cp1252 translator.
type documento struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	pageW    float64
	pageH    float64
	contentW float64
}

func novoDocumento() *documento {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	w, h := pdf.GetPageSize()
	return &documento{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		pageW:    w,
		pageH:    h,
		contentW: w - 28,
	}
}

func (d *documento) moldura() {
	d.pdf.SetDrawColor(153, 153, 153)
	d.pdf.SetLineWidth(0.2)
	d.pdf.Rect(7, 7, d.pageW-14, d.pageH-14, "D")
	d.pdf.SetDrawColor(0, 0, 0)
}

func (d *documento) cabecalho(e Empresa, titulo, subtitulo string) {
	d.moldura()
	d.pdf.SetFont("Helvetica", "B", 12)
	d.pdf.CellFormat(d.contentW, 6, d.tr(e.Nome), "", 1, "C", false, 0, "")

	d.pdf.SetFont("Helvetica", "", 8)
	linha := "CNPJ: " + e.CNPJ
	if e.Endereco != "" {
		linha += "  •  Endereço: " + e.Endereco
	}
	if e.Telefone != "" {
		linha += "  •  Tel: " + e.Telefone
	}
	d.pdf.CellFormat(d.contentW, 4, d.tr(linha), "", 1, "C", false, 0, "")
	if e.ResponsavelTecnico != "" {
		d.pdf.CellFormat(d.contentW, 4, d.tr("Responsável Técnico: "+e.ResponsavelTecnico), "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(6)

	d.pdf.SetFont("Helvetica", "B", 14)
	d.pdf.CellFormat(d.contentW, 7, d.tr(titulo), "", 1, "C", false, 0, "")
	if subtitulo != "" {
		d.pdf.SetFont("Helvetica", "", 8)
		d.pdf.CellFormat(d.contentW, 4, d.tr(subtitulo), "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(5)
}

func (d *documento) secao(titulo string) {
	d.pdf.SetFont("Helvetica", "B", 10)
	d.pdf.CellFormat(d.contentW, 5, d.tr(titulo), "B", 1, "L", false, 0, "")
	d.pdf.Ln(1)
}

func (d *documento) colaborador(c Colaborador, emissao time.Time) {
	d.secao("DADOS DO COLABORADOR")
	d.pdf.SetFont("Helvetica", "", 9)
	half := d.contentW / 2
	d.pdf.CellFormat(half, 5, d.tr("Nome: "+c.Nome), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(half, 5, d.tr("Data de emissão: "+emissao.Format("02/01/2006")), "", 1, "R", false, 0, "")
	d.pdf.CellFormat(d.contentW, 5, d.tr("Matrícula: "+c.Matricula), "", 1, "L", false, 0, "")
	setor := c.Setor
	if setor == "" {
		setor = "-"
	}
	d.pdf.CellFormat(d.contentW, 5, d.tr("Setor: "+setor), "", 1, "L", false, 0, "")
	d.pdf.Ln(3)
}

func (d *documento) termo(comTitulo bool) {
	if comTitulo {
		d.secao("TERMO DE RESPONSABILIDADE")
	}
	d.pdf.SetFont("Helvetica", "", 8.5)
	d.pdf.MultiCell(d.contentW, 4, d.tr(termoResponsabilidade), "", "L", false)
	d.pdf.Ln(5)
}

func (d *documento) assinaturas() {
	d.pdf.Ln(18)
	d.pdf.SetFont("Helvetica", "", 9)
	x1, x2 := 35.0, d.pageW-35
	for _, rotulo := range []string{"Assinatura do Colaborador", "Assinatura do Responsável Técnico"} {
		y := d.pdf.GetY()
		d.pdf.SetLineWidth(0.15)
		d.pdf.Line(x1, y, x2, y)
		d.pdf.Ln(1)
		d.pdf.CellFormat(d.contentW, 4, d.tr(rotulo), "", 1, "C", false, 0, "")
		d.pdf.Ln(14)
	}
}

func (d *documento) rodape() {
	d.pdf.SetY(d.pageH - 18)
	d.pdf.SetFont("Helvetica", "I", 8)
	d.pdf.SetTextColor(128, 128, 128)
	d.pdf.CellFormat(d.contentW, 4, d.tr(rodape), "", 1, "C", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

func (d *documento) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderFichaEpi renders the employee PPE control sheet.
func RenderFichaEpi(doc FichaEpiDoc) ([]byte, error) {
	d := novoDocumento()
	d.cabecalho(doc.Empresa, "FICHA DE CONTROLE DE EPI",
		"Registro de entrega, uso e devolução de Equipamentos de Proteção Individual")
	d.colaborador(doc.Colaborador, doc.Emissao)

	d.secao("PERÍODO DO RELATÓRIO")
	d.pdf.SetFont("Helvetica", "", 9)
	periodo := "Movimentações de todo o período"
	if doc.Periodo != "" {
		periodo = "Movimentações entre: " + doc.Periodo
	}
	d.pdf.CellFormat(d.contentW, 5, d.tr(periodo), "", 1, "L", false, 0, "")
	d.pdf.Ln(3)

	d.termo(false)

	// column widths follow the proportions of the printed form
	widths := []float64{0.32, 0.10, 0.08, 0.16, 0.19, 0.15}
	headers := []string{"Descrição do EPI", "CA", "Qtde", "Entrega", "Devolução/Descarte", "Status"}

	d.pdf.SetFont("Helvetica", "B", 8.5)
	d.pdf.SetFillColor(211, 211, 211)
	for i, h := range headers {
		d.pdf.CellFormat(d.contentW*widths[i], 6, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 8.5)
	for _, l := range doc.Linhas {
		cells := []string{l.Epi, l.CA, fmt.Sprintf("%d", l.Quantidade), l.Entrega, l.DevolucaoDescarte, l.Status}
		for i, v := range cells {
			d.pdf.CellFormat(d.contentW*widths[i], 6, d.tr(v), "1", 0, "C", false, 0, "")
		}
		d.pdf.Ln(-1)
	}

	d.assinaturas()
	d.rodape()
	return d.bytes()
}

// RenderMovimentacao renders the single-delivery movement document.
func RenderMovimentacao(doc MovimentacaoDoc) ([]byte, error) {
	d := novoDocumento()
	d.cabecalho(doc.Empresa, "MOVIMENTAÇÃO DE EPI", "")
	d.colaborador(doc.Colaborador, doc.Emissao)
	d.termo(true)

	d.secao("DETALHES DA MOVIMENTAÇÃO")
	labelW := d.contentW * 0.33
	valueW := d.contentW - labelW

	d.pdf.SetFont("Helvetica", "B", 9)
	d.pdf.SetFillColor(211, 211, 211)
	d.pdf.CellFormat(labelW, 6, d.tr("Campo"), "1", 0, "C", true, 0, "")
	d.pdf.CellFormat(valueW, 6, d.tr("Informação"), "1", 1, "C", true, 0, "")

	d.pdf.SetFont("Helvetica", "", 9)
	for _, c := range doc.Detalhes {
		d.pdf.CellFormat(labelW, 6, d.tr(c.Rotulo), "1", 0, "C", false, 0, "")
		d.pdf.CellFormat(valueW, 6, d.tr(c.Valor), "1", 1, "C", false, 0, "")
	}

	d.assinaturas()
	d.rodape()
	return d.bytes()
}
